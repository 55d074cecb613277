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

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	var rows []domain.Category
	if err := GetDB(c).Order("name ASC").Find(&rows).Error; err != nil {
		return failInternal(c, "CATEGORIES_GET", err)
	}
	return ok(c, rows)
}

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse category")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "Name is required")
	}

	now := time.Now()
	cat := domain.Category{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: payload.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&cat).Error; err != nil {
		return failInternal(c, "CATEGORIES_POST", err)
	}
	logOperation(c, "category_create", "created category "+cat.Name)
	return ok(c, cat)
}

// deleteCategory removes a category independently; referencing products
// keep their category_id (no cascade).
func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid category ID")
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Category{}).Error; err != nil {
		return failInternal(c, "CATEGORIES_DELETE", err)
	}
	logOperation(c, "category_delete", "deleted category")
	return c.NoContent(http.StatusNoContent)
}
