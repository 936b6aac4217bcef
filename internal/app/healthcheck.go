package app

import (
	"net/http"

	"github.com/yigitentrk/show-booking-system/api"
)

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:      "available",
		Environment: app.config.env,
		Version:     version,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
