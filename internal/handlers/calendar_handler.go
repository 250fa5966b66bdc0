package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-scheduler/internal/httperr"
	"github.com/BruksfildServices01/tutor-scheduler/internal/httpresp"
	uccalendar "github.com/BruksfildServices01/tutor-scheduler/internal/usecase/calendar"
)

type CalendarHandler struct {
	build *uccalendar.BuildCalendar
	log   *zap.Logger
}

func NewCalendarHandler(build *uccalendar.BuildCalendar, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{build: build, log: log}
}

// Get returns the merged feed for [start, end]. A source that fails is
// named in partial_failures while the others are still returned.
func (h *CalendarHandler) Get(c *gin.Context) {
	start, ok := optionalInstant(c, "start")
	if !ok {
		return
	}
	end, ok := optionalInstant(c, "end")
	if !ok {
		return
	}

	var in uccalendar.Input
	if start != nil {
		in.Start = *start
	}
	if end != nil {
		in.End = *end
	}

	out, err := h.build.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}
