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

// Clients were an in-memory mock in the old dashboard; they are persisted
// rows here.
func registerClientRoutes() {
	webserver.ApiGET("/clients", listClients)
	webserver.ApiPOST("/clients", createClient)
	webserver.ApiDELETE("/clients/:id", deleteClient)
}

func listClients(c echo.Context) error {
	var rows []domain.Client
	if err := GetDB(c).Order("name ASC").Find(&rows).Error; err != nil {
		return failInternal(c, "CLIENTS_GET", err)
	}
	return ok(c, rows)
}

type clientPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
	Remark  string `json:"remark"`
}

func createClient(c echo.Context) error {
	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse client")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.Name == "" || payload.Email == "" {
		return fail(c, http.StatusBadRequest, "Name and email are required")
	}

	now := time.Now()
	client := domain.Client{
		ID:        common.UUIDint64(),
		Name:      payload.Name,
		Email:     payload.Email,
		Mobile:    payload.Mobile,
		Address:   payload.Address,
		Remark:    payload.Remark,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&client).Error; err != nil {
		return failInternal(c, "CLIENTS_POST", err)
	}
	logOperation(c, "client_create", "created client "+client.Name)
	return ok(c, client)
}

func deleteClient(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid client ID")
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Client{}).Error; err != nil {
		return failInternal(c, "CLIENTS_DELETE", err)
	}
	logOperation(c, "client_delete", "deleted client")
	return c.NoContent(http.StatusNoContent)
}
