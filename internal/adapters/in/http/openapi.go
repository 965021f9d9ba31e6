package http

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

// NewOpenAPIValidator loads the API contract from specPath and returns
// echo middleware that rejects requests straying from it before they
// reach a handler. Routes the contract does not describe, such as
// health and metrics, pass through untouched.
func NewOpenAPIValidator(specPath string) (echo.MiddlewareFunc, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(specPath)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, err
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			request := ctx.Request()

			route, pathParams, err := router.FindRoute(request)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(ctx)
				}
				return writeValidationError(ctx, err)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    request,
				PathParams: pathParams,
				Route:      route,
			}
			if err = openapi3filter.ValidateRequest(request.Context(), input); err != nil {
				return ctx.JSON(http.StatusBadRequest, ErrorResponse{
					Code:    codeValidation,
					Message: err.Error(),
				})
			}

			return next(ctx)
		}
	}, nil
}
