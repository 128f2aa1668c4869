package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/room"
	"github.com/BruksfildServices01/room-scheduler/internal/httperr"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: timezone.Now}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	r, err := uc.repo.GetRoom(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("room_not_found")
		}
		return nil, err
	}
	if !r.IsActive {
		return []domain.TimeSlot{}, nil
	}

	hours, err := room.HoursOf(r)
	if err != nil {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := uc.repo.ListActiveForRoom(
		ctx,
		r.ID,
		hours.StartOn(in.Date),
		hours.EndOn(in.Date),
	)
	if err != nil {
		return nil, err
	}

	return domain.Slots(r, in.Date, appointments, uc.now()), nil
}
