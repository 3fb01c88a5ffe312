package handlers

import (
	"net/http"

	"borsibaar/internal/common"
	"borsibaar/internal/logging"
	"borsibaar/internal/services"

	"github.com/labstack/echo/v4"
)

type BarStationHandlers struct {
	stations services.BarStationService
	log      logging.Logger
}

func NewBarStationHandlers(stations services.BarStationService, log logging.Logger) *BarStationHandlers {
	return &BarStationHandlers{stations: stations, log: log}
}

func (h *BarStationHandlers) ListBarStations(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	stations, err := h.stations.List(c.Request().Context(), user)
	if err != nil {
		return respondError(c, h.log, "Bar station", err)
	}
	return c.JSON(http.StatusOK, stations)
}

func (h *BarStationHandlers) ListActiveBarStations(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	stations, err := h.stations.ListActive(c.Request().Context(), user)
	if err != nil {
		return respondError(c, h.log, "Bar station", err)
	}
	return c.JSON(http.StatusOK, stations)
}

func (h *BarStationHandlers) GetBarStation(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	station, err := h.stations.Get(c.Request().Context(), user, id)
	if err != nil {
		return respondError(c, h.log, "Bar station", err)
	}
	return c.JSON(http.StatusOK, station)
}
