package middleware

import (
	"context"
	"net/http"

	"github.com/danielcarreno/foodrush-backend/pkg/logger"
)

const customerIDHeader = "X-Customer-Id"

type customerIDKey struct{}

// Customer resolves the caller's customer id from the request header,
// falling back to the configured default when the client sends none.
func Customer(defaultCustomerID string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID := r.Header.Get(customerIDHeader)
			if customerID == "" {
				customerID = defaultCustomerID
			}

			ctx := context.WithValue(r.Context(), customerIDKey{}, customerID)
			if logg != nil {
				ctx = logg.WithCustomerID(ctx, customerID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerID returns the customer id resolved for this request.
func CustomerID(ctx context.Context) string {
	if id, ok := ctx.Value(customerIDKey{}).(string); ok {
		return id
	}
	return ""
}
