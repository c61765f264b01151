package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_Services_FiltersInactive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"services":[
			{"id":1,"name":"Studio Indoor","base_price":300000,"discount_value":0,"is_active":true},
			{"id":2,"name":"Old Package","base_price":100000,"discount_value":0,"is_active":false},
			{"id":3,"name":"Outdoor Session","base_price":500000,"discount_value":50000,"is_active":true,"badge":"Popular"}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	services, err := client.Services(context.Background())

	assert.NoError(t, err)
	assert.Len(t, services, 2)
	assert.Equal(t, int64(1), services[0].ID)
	assert.Equal(t, int64(3), services[1].ID)
}

func TestClient_ServiceByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"services":[{"id":7,"name":"Wedding","base_price":750000,"is_active":true}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	svc, err := client.ServiceByID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, "Wedding", svc.Name)

	_, err = client.ServiceByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_AddonsForService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/addons", r.URL.Path)
		assert.Equal(t, "Outdoor Session", r.URL.Query().Get("service_name"))
		_, _ = w.Write([]byte(`{"addons":[{"id":4,"name":"Extra album","price":100000,"is_active":true}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	addons, err := client.AddonsForService(context.Background(), "Outdoor Session")

	assert.NoError(t, err)
	assert.Len(t, addons, 1)
	assert.Equal(t, int64(100000), addons[0].Price)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Services(context.Background())
	assert.Error(t, err)
}
