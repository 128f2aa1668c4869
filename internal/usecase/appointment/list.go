package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/models"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists every appointment for admins and only the actor's own
// otherwise.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor domain.Actor,
	f domain.ListFilter,
) (dto.Page[dto.AppointmentListDTO], error) {

	f.ListQuery = f.ListQuery.Normalize()
	if !actor.Admin {
		f.OwnerID = actor.UserID
	}

	appointments, total, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return dto.Page[dto.AppointmentListDTO]{}, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, ToListDTO(ap))
	}

	return dto.NewPage(out, total, f.ListQuery), nil
}

func ToListDTO(ap models.Appointment) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:          ap.ID,
		Date:        timezone.FormatDate(ap.StartTime),
		StartTime:   timezone.FormatClock(ap.StartTime),
		EndTime:     timezone.FormatClock(ap.EndTime),
		StartsAt:    ap.StartTime,
		Status:      ap.Status,
		StatusLabel: domain.Status(ap.Status).Label(),
		UserID:      ap.UserID,
		ClientName:  ap.User.FullName(),
		ClientEmail: ap.User.Email,
		RoomID:      ap.RoomID,
		RoomName:    ap.Room.Name,
	}
}
