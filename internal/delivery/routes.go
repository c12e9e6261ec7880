package delivery

import (
	"github.com/Vovarama1992/mimirpublish/internal/ports"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hAuth *AuthHandler, auth ports.AuthService, hAsset *AssetHandler) {

	r.Post("/api/login", hAuth.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(auth))

		r.Get("/api/asset", hAsset.Get)
		r.Put("/api/asset/in-point", hAsset.SetInPoint)
		r.Put("/api/asset/out-point", hAsset.SetOutPoint)
		r.Post("/api/asset/destinations/{dest}/toggle", hAsset.ToggleDestination)
		r.Patch("/api/form", hAsset.UpdateForm)
		r.Post("/api/submit", hAsset.Submit)

		r.Get("/api/destinations", hAsset.Destinations)
		r.Get("/api/messages", hAsset.Messages)
		r.Post("/api/timecode/convert", hAsset.ConvertTimecode)
	})
}
