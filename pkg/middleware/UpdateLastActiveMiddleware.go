package middleware

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LastActiveUpdater is implemented by services.UserService.
type LastActiveUpdater interface {
	UpdateLastActive(ctx context.Context, id primitive.ObjectID) error
}

func UpdateLastActiveMiddleware(userService LastActiveUpdater) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims != nil {
				userID, err := primitive.ObjectIDFromHex(claims.UserID)
				if err == nil {
					if err := userService.UpdateLastActive(r.Context(), userID); err != nil {
						log.WithError(err).WithField("user_id", claims.UserID).Warn("Failed to update last active")
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
