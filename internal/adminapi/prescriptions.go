package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/pharmadmin/internal/domain"
	"github.com/talkincode/pharmadmin/internal/webserver"
	"github.com/talkincode/pharmadmin/pkg/common"
)

func registerPrescriptionRoutes() {
	webserver.ApiGET("/prescriptions", listPrescriptions)
	webserver.ApiPOST("/prescriptions", createPrescription)
}

func listPrescriptions(c echo.Context) error {
	var rows []domain.Prescription
	if err := GetDB(c).Order("created_at DESC").Find(&rows).Error; err != nil {
		return failInternal(c, "PRESCRIPTIONS_GET", err)
	}
	return ok(c, rows)
}

type prescriptionPayload struct {
	DoctorName string `json:"doctor_name"`
	Diagnosis  string `json:"diagnosis"`
	Notes      string `json:"notes"`
}

func createPrescription(c echo.Context) error {
	var payload prescriptionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse prescription")
	}
	payload.DoctorName = strings.TrimSpace(payload.DoctorName)
	if payload.DoctorName == "" || strings.TrimSpace(payload.Diagnosis) == "" {
		return fail(c, http.StatusBadRequest, "Doctor name and diagnosis are required")
	}

	now := time.Now()
	prescription := domain.Prescription{
		ID:         common.UUIDint64(),
		DoctorName: payload.DoctorName,
		Diagnosis:  payload.Diagnosis,
		Notes:      payload.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := GetDB(c).Create(&prescription).Error; err != nil {
		return failInternal(c, "PRESCRIPTIONS_POST", err)
	}
	logOperation(c, "prescription_create", "created prescription")
	return ok(c, prescription)
}
