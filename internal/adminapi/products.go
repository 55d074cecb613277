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

type productPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	CategoryId  int64   `json:"category_id,string"`
}

// registerProductRoutes registers the catalog product endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// listProducts returns the full catalog, each product expanded with its
// category.
func listProducts(c echo.Context) error {
	var rows []domain.Product
	if err := GetDB(c).Preload("Category").Order("created_at DESC").Find(&rows).Error; err != nil {
		return failInternal(c, "PRODUCTS_GET", err)
	}
	return ok(c, rows)
}

func (p *productPayload) validate() string {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	switch {
	case p.Name == "", p.Description == "":
		return "Name and description are required"
	case p.Price == 0:
		return "Price is required"
	case p.Stock == 0:
		return "Stock is required"
	case p.CategoryId == 0:
		return "Category is required"
	}
	return ""
}

// createProduct persists a catalog product. The category id is trusted as
// supplied; existence is not verified.
func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse product")
	}
	if msg := payload.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	now := time.Now()
	p := domain.Product{
		ID:          common.UUIDint64(),
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		CategoryId:  payload.CategoryId,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return failInternal(c, "PRODUCTS_POST", err)
	}

	GetDB(c).Preload("Category").Where("id = ?", p.ID).First(&p)
	logOperation(c, "product_create", "created product "+p.Name)
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid product ID")
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		return fail(c, http.StatusNotFound, "Product not found")
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse product")
	}
	if msg := payload.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	p.Name = payload.Name
	p.Description = payload.Description
	p.Price = payload.Price
	p.Stock = payload.Stock
	p.CategoryId = payload.CategoryId
	p.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&p).Error; err != nil {
		return failInternal(c, "PRODUCTS_PUT", err)
	}
	logOperation(c, "product_update", "updated product "+p.Name)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid product ID")
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.Product{}).Error; err != nil {
		return failInternal(c, "PRODUCTS_DELETE", err)
	}
	logOperation(c, "product_delete", "deleted product")
	return c.NoContent(http.StatusNoContent)
}
