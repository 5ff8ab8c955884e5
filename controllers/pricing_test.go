package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oldroad-backend/config"
	"oldroad-backend/models"
)

func TestAssignPriceUpsertIsIdempotent(t *testing.T) {
	r := setupTest(t)
	admin := createUser(t, "Szef", "0000", models.RoleAdmin)
	jan := createUser(t, "Jan", "1234", models.RoleUser)
	cut := createService(t, "Strzyżenie")
	token := authToken(t, admin)

	path := fmt.Sprintf("/api/admin/workers/%d/services", jan.ID)

	w := doRequest(t, r, http.MethodPost, path,
		map[string]any{"serviceId": cut.ID, "price": 50}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodPost, path,
		map[string]any{"serviceId": cut.ID, "price": 60}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.UserServicePrice
	require.NoError(t, config.DB.Where("user_id = ?", jan.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 60.0, rows[0].Price)
	assert.True(t, rows[0].Enabled)
}

func TestAssignPriceReenablesDisabledService(t *testing.T) {
	r := setupTest(t)
	admin := createUser(t, "Szef", "0000", models.RoleAdmin)
	jan := createUser(t, "Jan", "1234", models.RoleUser)
	cut := createService(t, "Strzyżenie")
	token := authToken(t, admin)

	require.NoError(t, config.DB.Create(&models.UserServicePrice{
		UserID: jan.ID, ServiceID: cut.ID, Price: 50, Enabled: false,
	}).Error)

	w := doRequest(t, r, http.MethodPost, fmt.Sprintf("/api/admin/workers/%d/services", jan.ID),
		map[string]any{"serviceId": cut.ID, "price": 55}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var row models.UserServicePrice
	require.NoError(t, config.DB.Where("user_id = ? AND service_id = ?", jan.ID, cut.ID).First(&row).Error)
	assert.Equal(t, 55.0, row.Price)
	assert.True(t, row.Enabled)
}

func TestRemoveServiceIsIdempotent(t *testing.T) {
	r := setupTest(t)
	admin := createUser(t, "Szef", "0000", models.RoleAdmin)
	jan := createUser(t, "Jan", "1234", models.RoleUser)
	cut := createService(t, "Strzyżenie")
	token := authToken(t, admin)

	require.NoError(t, config.DB.Create(&models.UserServicePrice{
		UserID: jan.ID, ServiceID: cut.ID, Price: 50, Enabled: true,
	}).Error)

	path := fmt.Sprintf("/api/admin/workers/%d/services/%d", jan.ID, cut.ID)

	w := doRequest(t, r, http.MethodDelete, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var row models.UserServicePrice
	require.NoError(t, config.DB.Where("user_id = ? AND service_id = ?", jan.ID, cut.ID).First(&row).Error)
	assert.False(t, row.Enabled)

	// disabling again is still a success
	w = doRequest(t, r, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// as is disabling an assignment that never existed; no row is created
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/admin/workers/%d/services/999", jan.ID), nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.UserServicePrice{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnabledVersusAllServiceLists(t *testing.T) {
	r := setupTest(t)
	jan := createUser(t, "Jan", "1234", models.RoleUser)
	cut := createService(t, "Strzyżenie")
	shave := createService(t, "Golenie")
	token := authToken(t, jan)

	require.NoError(t, config.DB.Create(&models.UserServicePrice{
		UserID: jan.ID, ServiceID: cut.ID, Price: 50, Enabled: true,
	}).Error)
	require.NoError(t, config.DB.Create(&models.UserServicePrice{
		UserID: jan.ID, ServiceID: shave.ID, Price: 30, Enabled: false,
	}).Error)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/services", jan.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	enabled := decodeList(t, w)
	require.Len(t, enabled, 1)
	assert.Equal(t, "Strzyżenie", enabled[0]["name"])

	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/users/%d/services/all", jan.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 2)
}

func TestPriceLookupEnabledVersusAll(t *testing.T) {
	r := setupTest(t)
	jan := createUser(t, "Jan", "1234", models.RoleUser)
	cut := createService(t, "Strzyżenie")
	token := authToken(t, jan)

	require.NoError(t, config.DB.Create(&models.UserServicePrice{
		UserID: jan.ID, ServiceID: cut.ID, Price: 50, Enabled: false,
	}).Error)

	// the booking form only sees enabled prices
	w := doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/users/%d/prices/%d", jan.ID, cut.ID), nil, token)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Brak ustalonej ceny usługi", decodeBody(t, w)["error"])

	// the historical edit screen still gets a suggestion
	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/users/%d/prices/%d/all", jan.ID, cut.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50.0, decodeBody(t, w)["price"])
}

func TestWorkerSetsOwnPrice(t *testing.T) {
	r := setupTest(t)
	jan := createUser(t, "Jan", "1234", models.RoleUser)
	cut := createService(t, "Strzyżenie")
	token := authToken(t, jan)

	w := doRequest(t, r, http.MethodPut,
		fmt.Sprintf("/api/users/%d/prices/%d", jan.ID, cut.ID),
		map[string]any{"price": 45}, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/users/%d/prices/%d", jan.ID, cut.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 45.0, decodeBody(t, w)["price"])
}

func TestWorkerCannotTouchOthersPrices(t *testing.T) {
	r := setupTest(t)
	jan := createUser(t, "Jan", "1234", models.RoleUser)
	piotr := createUser(t, "Piotr", "5678", models.RoleUser)
	cut := createService(t, "Strzyżenie")

	w := doRequest(t, r, http.MethodGet,
		fmt.Sprintf("/api/users/%d/prices", piotr.ID), nil, authToken(t, jan))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, r, http.MethodPut,
		fmt.Sprintf("/api/users/%d/prices/%d", piotr.ID, cut.ID),
		map[string]any{"price": 45}, authToken(t, jan))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
