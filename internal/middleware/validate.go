package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bilgisen/newsnexus/internal/logger"
	"github.com/bilgisen/newsnexus/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const queryParamsKey = "queryParams"

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the "isodate" rule registered. It
// panics if the rule cannot be registered.
func NewValidator() *Validator {
	v := validator.New()
	err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return models.ValidIsoDate(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("middleware: register isodate validation: %v", err))
	}
	return &Validator{validate: v}
}

// Validate validates the request body against the provided struct
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateQuery parses the query string into a fresh T per request,
// validates it and stores it for QueryParams.
func ValidateQuery[T any]() fiber.Handler {
	v := NewValidator()

	return func(c *fiber.Ctx) error {
		params := new(T)
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}

		if err := v.Validate(params); err != nil {
			fields := make(map[string]string)
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					fields[fe.Field()] = fe.Tag()
				}
			}

			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fields,
			})
		}

		c.Locals(queryParamsKey, params)
		return c.Next()
	}
}

// QueryParams returns the value stored by ValidateQuery[T].
func QueryParams[T any](c *fiber.Ctx) *T {
	params, _ := c.Locals(queryParamsKey).(*T)
	return params
}

// ErrorHandler is a middleware that handles errors in a consistent way
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	level := zerolog.WarnLevel
	if code >= fiber.StatusInternalServerError {
		level = zerolog.ErrorLevel
	}
	log := logger.Component("http")
	log.WithLevel(level).
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
