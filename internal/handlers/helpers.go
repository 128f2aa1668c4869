package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/room-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/room-scheduler/internal/dto"
	"github.com/BruksfildServices01/room-scheduler/internal/middleware"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

// parseListQuery reads page, limit, query, date and order. Invalid values
// fall back to the defaults.
func parseListQuery(c *gin.Context) dto.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(dto.DefaultLimit)))

	q := dto.ListQuery{
		Page:  page,
		Limit: limit,
		Query: strings.TrimSpace(c.Query("query")),
		Order: dto.ParseOrder(c.Query("order")),
	}

	if raw := c.Query("date"); raw != "" {
		if d, err := timezone.ParseDate(raw); err == nil {
			q.Date = &d
		}
	}

	return q.Normalize()
}

func actorFrom(c *gin.Context) domain.Actor {
	p, _ := middleware.PrincipalFrom(c)
	return domain.Actor{UserID: p.ID, Admin: p.IsAdmin()}
}
