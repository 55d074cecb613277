package adminapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/talkincode/pharmadmin/internal/domain"
)

func TestCreateCategory(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/categories",
		`{"name":"Antibiotics","description":"Prescription antibiotics"}`)
	require.NoError(t, createCategory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var category domain.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &category))
	require.Equal(t, "Antibiotics", category.Name)
	require.NotZero(t, category.ID)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/categories",
		`{"description":"no name"}`)
	require.NoError(t, createCategory(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	testApp.DB().Model(&domain.Category{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestCreateClient(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/clients",
		`{"name":"Juan","email":"juan@mail.com"}`)
	require.NoError(t, createClient(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var client domain.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &client))
	require.Equal(t, "Juan", client.Name)
	require.Equal(t, "juan@mail.com", client.Email)
}

func TestCreateClientValidation(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	for _, body := range []string{`{"name":"Juan"}`, `{"email":"juan@mail.com"}`, `{}`} {
		c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/clients", body)
		require.NoError(t, createClient(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestCreatePrescription(t *testing.T) {
	testApp := newTestApp(t)
	operator := newTestOperator(t, testApp)

	c, rec := newTestContext(t, testApp, operator, http.MethodPost, "/api/prescriptions",
		`{"doctor_name":"Dr. Rivera","diagnosis":"Migraine","notes":"max 3 per day"}`)
	require.NoError(t, createPrescription(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newTestContext(t, testApp, operator, http.MethodPost, "/api/prescriptions",
		`{"doctor_name":"Dr. Rivera"}`)
	require.NoError(t, createPrescription(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
