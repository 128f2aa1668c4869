package dto

import "time"

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	StartsAt    time.Time `json:"startsAt"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"statusLabel"`
	UserID      string    `json:"userId"`
	ClientName  string    `json:"clientName"`
	ClientEmail string    `json:"clientEmail"`
	RoomID      string    `json:"roomId"`
	RoomName    string    `json:"room"`
}
