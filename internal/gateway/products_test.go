// internal/gateway/products_test.go
package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchProductsByIDsBatchRequest(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/products/batch", r.URL.Path)
		assert.Equal(t, []string{"p1", "p2", "p3"}, r.URL.Query()["product_ids"])
		w.Write([]byte(`[{"id":"p1","sale_price":11000},{"id":"p3","sale_price":6000}]`))
	}))
	defer srv.Close()

	g := NewProductGateway(testClient(srv.URL))
	products, err := g.FetchProductsByIDs(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)

	// Partial responses are valid: absent ids are the caller's problem.
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, int64(11000), products[0].SalePrice)
	assert.Equal(t, 1, requests)
}

func TestFetchProductsByIDsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty id list")
	}))
	defer srv.Close()

	g := NewProductGateway(testClient(srv.URL))
	products, err := g.FetchProductsByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, products)
}

func TestSearchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "paracetamol", q.Get("search"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "12", q.Get("limit"))
		w.Write([]byte(`{"data":[{"id":"p1"}],"total":25,"page":2,"limit":12,"lastPage":3}`))
	}))
	defer srv.Close()

	g := NewProductGateway(testClient(srv.URL))
	result, err := g.SearchProducts(context.Background(), SearchParams{
		Search: "paracetamol",
		Page:   2,
		Limit:  12,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, result.Total)
	assert.Equal(t, 3, result.LastPage)
	require.Len(t, result.Data, 1)
}
