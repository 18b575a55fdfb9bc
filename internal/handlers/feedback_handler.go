package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/services"
)

// FeedbackHandler handles HTTP requests for customer feedback.
type FeedbackHandler struct {
	service  *services.FeedbackService
	validate *validator.Validate
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the feedback routes with the Fiber app.
func (h *FeedbackHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/feedbacks")
	routes.Get("/", h.HandleGetFeedback)
	routes.Get("/reports/avg-rating", h.HandleAvgRatingPerCustomer)
	routes.Get("/reports/count-by-city", h.HandleCountByCity)
	routes.Get("/top-rated", h.HandleTopRatedFeedback)
	routes.Get("/by-date", h.HandleFeedbackByDate)
	routes.Get("/customer/:name", h.HandleFeedbackByCustomer)
	routes.Get("/city/:city", h.HandleFeedbackFromCity)
	routes.Get("/:id", h.HandleGetFeedbackByID)
	routes.Post("/", h.HandleCreateFeedback)
	routes.Put("/:id", h.HandleUpdateFeedback)
	routes.Delete("/:id", h.HandleDeleteFeedback)
}

// HandleGetFeedback retrieves all feedback documents.
func (h *FeedbackHandler) HandleGetFeedback(c *fiber.Ctx) error {
	feedbacks, err := h.service.GetAllFeedback(c.UserContext())
	if err != nil {
		log.Printf("Error getting feedback: %v", err)
		return failWith(c, err, "Could not retrieve feedback")
	}
	return c.JSON(feedbacks)
}

// HandleGetFeedbackByID retrieves a single feedback document by its ID.
func (h *FeedbackHandler) HandleGetFeedbackByID(c *fiber.Ctx) error {
	feedback, err := h.service.GetFeedbackByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return failWith(c, err, "Could not retrieve feedback")
	}
	return c.JSON(feedback)
}

// HandleCreateFeedback stores a new feedback document.
func (h *FeedbackHandler) HandleCreateFeedback(c *fiber.Ctx) error {
	var feedback models.Feedback
	if err := c.BodyParser(&feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.CreateFeedback(c.UserContext(), &feedback); err != nil {
		log.Printf("Error creating feedback: %v", err)
		return failWith(c, err, "Could not create feedback")
	}
	return c.Status(fiber.StatusCreated).JSON(feedback)
}

// HandleUpdateFeedback updates an existing feedback document.
func (h *FeedbackHandler) HandleUpdateFeedback(c *fiber.Ctx) error {
	var feedback models.Feedback
	if err := c.BodyParser(&feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	feedback.ID = c.Params("id")
	if err := h.validate.Struct(feedback); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErrorMap(err),
		})
	}

	if err := h.service.UpdateFeedback(c.UserContext(), &feedback); err != nil {
		log.Printf("Error updating feedback %s: %v", feedback.ID, err)
		return failWith(c, err, "Could not update feedback")
	}
	return c.JSON(feedback)
}

// HandleDeleteFeedback deletes a feedback document by its ID.
func (h *FeedbackHandler) HandleDeleteFeedback(c *fiber.Ctx) error {
	if err := h.service.DeleteFeedback(c.UserContext(), c.Params("id")); err != nil {
		return failWith(c, err, "Could not delete feedback")
	}
	return c.JSON(fiber.Map{"message": "Feedback deleted successfully"})
}

// HandleFeedbackByCustomer retrieves feedback left by the named customer.
func (h *FeedbackHandler) HandleFeedbackByCustomer(c *fiber.Ctx) error {
	feedbacks, err := h.service.FeedbackByCustomer(c.UserContext(), c.Params("name"))
	if err != nil {
		log.Printf("Error getting feedback by customer: %v", err)
		return failWith(c, err, "Could not retrieve feedback")
	}
	return c.JSON(feedbacks)
}

// HandleFeedbackByDate retrieves feedback from the day given via ?date= in
// dd-MM-yyyy format.
func (h *FeedbackHandler) HandleFeedbackByDate(c *fiber.Ctx) error {
	day, err := parseOrderDate(c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	feedbacks, err := h.service.FeedbackByDate(c.UserContext(), day)
	if err != nil {
		log.Printf("Error getting feedback by date: %v", err)
		return failWith(c, err, "Could not retrieve feedback")
	}
	return c.JSON(feedbacks)
}

// HandleTopRatedFeedback retrieves feedback rated 4 or higher.
func (h *FeedbackHandler) HandleTopRatedFeedback(c *fiber.Ctx) error {
	feedbacks, err := h.service.TopRatedFeedback(c.UserContext())
	if err != nil {
		log.Printf("Error getting top rated feedback: %v", err)
		return failWith(c, err, "Could not retrieve feedback")
	}
	return c.JSON(feedbacks)
}

// HandleFeedbackFromCity retrieves feedback left by customers in a city.
func (h *FeedbackHandler) HandleFeedbackFromCity(c *fiber.Ctx) error {
	feedbacks, err := h.service.FeedbackFromCity(c.UserContext(), c.Params("city"))
	if err != nil {
		log.Printf("Error getting feedback by city: %v", err)
		return failWith(c, err, "Could not retrieve feedback")
	}
	return c.JSON(feedbacks)
}

// HandleAvgRatingPerCustomer reports average rating per customer.
func (h *FeedbackHandler) HandleAvgRatingPerCustomer(c *fiber.Ctx) error {
	ratings, err := h.service.AverageRatingPerCustomer(c.UserContext())
	if err != nil {
		log.Printf("Error getting rating report: %v", err)
		return failWith(c, err, "Could not retrieve rating report")
	}
	return c.JSON(ratings)
}

// HandleCountByCity reports feedback counts per customer city.
func (h *FeedbackHandler) HandleCountByCity(c *fiber.Ctx) error {
	counts, err := h.service.CountByCity(c.UserContext())
	if err != nil {
		log.Printf("Error getting city report: %v", err)
		return failWith(c, err, "Could not retrieve city report")
	}
	return c.JSON(counts)
}
