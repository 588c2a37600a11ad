package routes

import (
	"net/http"

	"tabi/auth"
	"tabi/chat"
	"tabi/home"
	"tabi/itinerary"
	"tabi/live"
	"tabi/maps"
	"tabi/middleware"
	"tabi/packing"
	"tabi/ratelim"
	"tabi/wishlist"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.GET("/api/auth/session", auth.Session)
	router.POST("/api/auth/avatar", middleware.Authenticate(auth.UploadAvatar))
}

func AddItineraryRoutes(router *httprouter.Router) {
	router.GET("/api/itinerary", itinerary.GetItinerary)
	router.GET("/api/itinerary/day/:day", itinerary.GetDay)
	router.PUT("/api/itinerary/day/:day", middleware.RequireAdmin(itinerary.UpdateDay))
	router.POST("/api/itinerary/day/:day/items", middleware.RequireAdmin(itinerary.AddItem))
	router.PUT("/api/itinerary/day/:day/items/:itemid", middleware.RequireAdmin(itinerary.UpdateItem))
	router.DELETE("/api/itinerary/day/:day/items/:itemid", middleware.RequireAdmin(itinerary.DeleteItem))
	router.POST("/api/itinerary/seed", middleware.RequireAdmin(itinerary.SeedDefaults))
	router.GET("/api/itinerary/export.pdf", itinerary.ExportPDF)
}

func AddWishlistRoutes(router *httprouter.Router) {
	router.GET("/api/wishlist", wishlist.GetWishlist)
	router.POST("/api/wishlist", ratelim.RateLimit(middleware.Authenticate(wishlist.AddWish)))
	router.POST("/api/wishlist/:id/vote", middleware.Authenticate(wishlist.ToggleVote))
	router.DELETE("/api/wishlist/:id", middleware.Authenticate(wishlist.DeleteWish))
}

func AddChatRoutes(router *httprouter.Router) {
	router.GET("/api/chat/messages", middleware.Authenticate(chat.GetMessages))
	router.GET("/api/chat/messages/:userid", middleware.RequireAdmin(chat.GetUserMessages))
	router.POST("/api/chat/send", ratelim.RateLimit(middleware.OptionalAuth(chat.Send)))
	router.GET("/api/chat/sessions", middleware.RequireAdmin(chat.GetSessions))
}

func AddMapsRoutes(router *httprouter.Router) {
	router.GET("/api/maps/markers", maps.GetMarkers)
}

func AddPackingRoutes(router *httprouter.Router) {
	router.GET("/api/packing", middleware.OptionalAuth(packing.GetList))
	router.PUT("/api/packing", middleware.Authenticate(packing.SaveList))
}

func AddHomeRoutes(router *httprouter.Router) {
	router.GET("/api/home/summary", home.GetSummary)
	router.GET("/api/config", home.GetPublicConfig)
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	handler := live.WebSocketHandler(hub)
	router.GET("/ws/:topic", handler)
	router.GET("/ws/:topic/:sub", handler)
}
