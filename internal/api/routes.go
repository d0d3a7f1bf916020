package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/homematch/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/homematch/internal/diversity"
	"github.com/povarna/generative-ai-agents/homematch/internal/listing"
	"github.com/povarna/generative-ai-agents/homematch/internal/search"
)

const OpenAPIPath = "/apidocs.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/search").
			To(handler.Search).
			Doc("Search listings matching free-text preferences").
			Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
			Reads(SearchRequest{}).
			Writes(search.Result{}).
			Returns(200, "OK", search.Result{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/constraints").
			To(handler.Constraints).
			Doc("Extract budget and bedroom constraints from a query").
			Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
			Reads(ConstraintsRequest{}).
			Writes(ConstraintsResponse{}).
			Returns(200, "OK", ConstraintsResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/listings").
			To(handler.ListListings).
			Doc("List the current catalog").
			Metadata(restfulspec.KeyOpenAPITags, []string{"listings"}).
			Writes(ListingsResponse{}).
			Returns(200, "OK", ListingsResponse{}))

	ws.
		Route(ws.PUT("/listings").
			To(handler.ReplaceListings).
			Doc("Replace the catalog with a validated array of listings").
			Metadata(restfulspec.KeyOpenAPITags, []string{"listings"}).
			Reads([]listing.Listing{}).
			Writes(ReplaceResponse{}).
			Returns(200, "OK", ReplaceResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/listings/generate").
			To(handler.GenerateListings).
			Doc("Generate a fresh catalog with the language model").
			Metadata(restfulspec.KeyOpenAPITags, []string{"listings"}).
			Reads(GenerateRequest{}).
			Writes(GenerateResponse{}).
			Returns(200, "OK", GenerateResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(502, "No listings generated", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/diversity").
			To(handler.Diversity).
			Doc("Diversity and quality report for the current catalog").
			Metadata(restfulspec.KeyOpenAPITags, []string{"listings"}).
			Writes(diversity.Report{}).
			Returns(200, "OK", diversity.Report{}))

	ws.
		Route(ws.POST("/personalize").
			To(handler.Personalize).
			Doc("Rewrite listing descriptions for a buyer").
			Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
			Reads(PersonalizeRequest{}).
			Writes(PersonalizeResponse{}).
			Returns(200, "OK", PersonalizeResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the OpenAPI document for every web service already
// added to container.
func RegisterOpenAPI(container *restful.Container) {
	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       OpenAPIPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "HomeMatch API",
			Description: "Listing generation, semantic search and personalization",
			Version:     apiVersion,
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "search", Description: "Search and personalization"}},
		{TagProps: spec.TagProps{Name: "listings", Description: "Catalog management"}},
	}
}
