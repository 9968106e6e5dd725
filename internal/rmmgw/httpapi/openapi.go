package httpapi

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
)

// buildOpenAPIDoc constructs the in-process OpenAPI document describing
// the resource and usagemetrics surface.
func buildOpenAPIDoc() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "rmm-go metadata gateway",
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(),
	}

	envelopeSchema := openapi3.NewObjectSchema().
		WithProperty("ResultCount", openapi3.NewIntegerSchema()).
		WithProperty("ResultData", openapi3.NewArraySchema()).
		WithProperty("PageSize", openapi3.NewIntegerSchema())

	searchResponse := openapi3.NewResponse().
		WithDescription("search results").
		WithContent(openapi3.NewContentWithJSONSchema(envelopeSchema))

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("url", openapi3.NewStringSchema()).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("httpStatus", openapi3.NewIntegerSchema())

	errorResponse := openapi3.NewResponse().
		WithDescription("error").
		WithContent(openapi3.NewContentWithJSONSchema(errorSchema))

	for _, collection := range Collections {
		op := openapi3.NewOperation()
		op.OperationID = "search" + collection
		op.Responses = openapi3.NewResponses()
		op.Responses.Set("200", &openapi3.ResponseRef{Value: searchResponse})
		op.Responses.Set("400", &openapi3.ResponseRef{Value: errorResponse})

		item := &openapi3.PathItem{Get: op}
		doc.Paths.Set("/"+collection, item)

		getOp := openapi3.NewOperation()
		getOp.OperationID = "get" + collection
		getOp.Responses = openapi3.NewResponses()
		getOp.Responses.Set("200", &openapi3.ResponseRef{Value: searchResponse})
		getOp.Responses.Set("404", &openapi3.ResponseRef{Value: errorResponse})
		getOp.Parameters = openapi3.Parameters{
			{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())},
		}

		doc.Paths.Set("/"+collection+"/{id}", &openapi3.PathItem{Get: getOp})
	}

	return doc
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc := buildOpenAPIDoc()
	body, err := doc.MarshalJSON()
	if err != nil {
		s.Logger.Error("failed to marshal openapi document", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}
