package routes

import (
	"net/http"

	"hotel/controllers"
	middlewares "hotel/middleware"
	"hotel/response"
	"hotel/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// Services là các service mà route table cần
type Services struct {
	Auth    *services.AuthService
	Users   *services.UserService
	Rooms   *services.RoomService
	Ledger  *services.BookingService
	Chatbot *services.ChatbotService
}

func SetupRoutes(router *gin.Engine, svc Services, m *melody.Melody) {
	authController := controllers.NewAuthController(svc.Auth)
	userController := controllers.NewUserController(svc.Users)
	roomController := controllers.NewRoomController(svc.Rooms)
	bookingController := controllers.NewBookingController(svc.Ledger)
	chatController := controllers.NewChatController(svc.Chatbot)

	authRequired := middlewares.AuthMiddleware(svc.Auth)

	api := router.Group("/api")

	api.POST("/auth/signin", authController.SignIn)
	api.POST("/auth/signup", authController.SignUp)

	api.GET("/users", authRequired, userController.GetUsers)
	api.GET("/users/me", authRequired, userController.GetProfile)
	api.PUT("/users/me/password", authRequired, userController.ChangePassword)

	api.GET("/rooms", roomController.GetAllRooms)
	api.GET("/rooms/available", roomController.GetAvailableRooms)
	api.GET("/rooms/:id", roomController.GetRoomDetail)
	api.POST("/rooms", authRequired, roomController.CreateRoom)
	api.PUT("/rooms/:id", authRequired, roomController.UpdateRoom)
	api.DELETE("/rooms/:id", authRequired, roomController.DeleteRoom)

	bookings := api.Group("/bookings", authRequired)
	bookings.POST("", bookingController.CreateBooking)
	bookings.GET("", bookingController.GetAllBookings)
	bookings.GET("/my-bookings", bookingController.GetMyBookings)
	bookings.DELETE("/:id", bookingController.CancelBooking)

	api.POST("/chatbot", chatController.ChatHandler)

	//ws
	if m != nil {
		router.GET("/ws", func(c *gin.Context) {
			m.HandleRequest(c.Writer, c.Request)
		})
	}

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	router.NoRoute(response.NotFound)
}
