// Package mcp exposes the catalog over the Model Context Protocol so agent
// tooling can browse the loaded collections. All tools are read-only.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/shopspring/decimal"

	"catalogctl/internal/client"
	"catalogctl/internal/graph"
	"catalogctl/internal/models"
	"catalogctl/internal/store"
)

// Server wraps an MCPServer with the catalog's stores and query client.
type Server struct {
	mcp     *mcpserver.MCPServer
	reg     *store.Registry
	queries *client.Client
	logger  *slog.Logger
}

// NewServer creates the MCP server over a loaded registry. The registry is
// read as-is; tools never trigger loads or writes.
func NewServer(reg *store.Registry, queries *client.Client, logger *slog.Logger) *Server {
	s := &Server{
		reg:     reg,
		queries: queries,
		logger:  logger,
	}

	mcpSrv := mcpserver.NewMCPServer(
		"catalogctl",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	mcpSrv.AddTool(buildListTool(), s.handleList)
	mcpSrv.AddTool(buildGetTool(), s.handleGet)
	mcpSrv.AddTool(buildQueryTool(), s.handleQuery)
	mcpSrv.AddTool(buildRelationsTool(), s.handleRelations)
	mcpSrv.AddTool(buildStatsTool(), s.handleStats)

	s.mcp = mcpSrv
	return s
}

// MCPServer returns the underlying mcp-go MCPServer for use with ServeStdio.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// HandleList is the exported handler for the "list" tool.
// It is exposed for direct testing without the mcp-go transport layer.
func (s *Server) HandleList(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleList(ctx, req)
}

// HandleGet is the exported handler for the "get" tool.
func (s *Server) HandleGet(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleGet(ctx, req)
}

// HandleQuery is the exported handler for the "query" tool.
func (s *Server) HandleQuery(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleQuery(ctx, req)
}

// HandleRelations is the exported handler for the "relations" tool.
func (s *Server) HandleRelations(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleRelations(ctx, req)
}

// HandleStats is the exported handler for the "stats" tool.
func (s *Server) HandleStats(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return s.handleStats(ctx, req)
}

// toolResultJSON marshals v to JSON and returns it as a tool text result.
func toolResultJSON(v any) (*mcpgo.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("mcp: marshaling result: %w", err)
	}
	return mcpgo.NewToolResultText(string(b)), nil
}

// --- tool definitions ---

func buildListTool() mcpgo.Tool {
	return mcpgo.NewTool("list",
		mcpgo.WithDescription("List one catalog collection from the loaded snapshot."),
		mcpgo.WithString("entity",
			mcpgo.Required(),
			mcpgo.Description("Collection to list: locations, addresses, organizations, persons, products, or history"),
		),
	)
}

func buildGetTool() mcpgo.Tool {
	return mcpgo.NewTool("get",
		mcpgo.WithDescription("Fetch one record by id from the loaded snapshot."),
		mcpgo.WithString("entity",
			mcpgo.Required(),
			mcpgo.Description("Collection: locations, addresses, organizations, persons, or products"),
		),
		mcpgo.WithNumber("id",
			mcpgo.Required(),
			mcpgo.Description("The record id"),
		),
	)
}

func buildQueryTool() mcpgo.Tool {
	return mcpgo.NewTool("query",
		mcpgo.WithDescription("Run a product query against the backend: average-rating, count-by-part-number, by-part-number-prefix, by-price-between, or by-unit."),
		mcpgo.WithString("name",
			mcpgo.Required(),
			mcpgo.Description("Query name"),
		),
		mcpgo.WithString("partNumber",
			mcpgo.Description("Part number or prefix, for the part-number queries"),
		),
		mcpgo.WithString("minPrice",
			mcpgo.Description("Lower price bound for by-price-between"),
		),
		mcpgo.WithString("maxPrice",
			mcpgo.Description("Upper price bound for by-price-between"),
		),
		mcpgo.WithString("unitOfMeasure",
			mcpgo.Description("Unit of measure for by-unit"),
		),
	)
}

func buildRelationsTool() mcpgo.Tool {
	return mcpgo.NewTool("relations",
		mcpgo.WithDescription("Show the records referencing a given record. A non-empty result means deleting it would be refused by the backend."),
		mcpgo.WithString("entity",
			mcpgo.Required(),
			mcpgo.Description("Collection: locations, addresses, organizations, or persons"),
		),
		mcpgo.WithNumber("id",
			mcpgo.Required(),
			mcpgo.Description("The record id"),
		),
	)
}

func buildStatsTool() mcpgo.Tool {
	return mcpgo.NewTool("stats",
		mcpgo.WithDescription("Get collection sizes from the loaded snapshot."),
	)
}

// --- tool handlers ---

func (s *Server) handleList(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	entity := req.GetString("entity", "")
	switch entity {
	case "locations":
		return toolResultJSON(s.reg.Locations.Items())
	case "addresses":
		return toolResultJSON(s.reg.Addresses.Items())
	case "organizations":
		return toolResultJSON(s.reg.Organizations.Items())
	case "persons":
		return toolResultJSON(s.reg.Persons.Items())
	case "products":
		return toolResultJSON(s.reg.Products.Items())
	case "history":
		return toolResultJSON(s.reg.History.Items())
	default:
		return mcpgo.NewToolResultErrorf("unknown entity %q", entity), nil
	}
}

func (s *Server) handleGet(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	entity := req.GetString("entity", "")
	id := int64(req.GetInt("id", 0))
	if id <= 0 {
		return mcpgo.NewToolResultError("id is required and must be positive"), nil
	}

	var (
		item any
		ok   bool
	)
	switch entity {
	case "locations":
		item, ok = s.reg.Locations.Find(id)
	case "addresses":
		item, ok = s.reg.Addresses.Find(id)
	case "organizations":
		item, ok = s.reg.Organizations.Find(id)
	case "persons":
		item, ok = s.reg.Persons.Find(id)
	case "products":
		item, ok = s.reg.Products.Find(id)
	default:
		return mcpgo.NewToolResultErrorf("unknown entity %q", entity), nil
	}
	if !ok {
		return mcpgo.NewToolResultErrorf("%s %d not found", strings.TrimSuffix(entity, "s"), id), nil
	}
	return toolResultJSON(item)
}

func (s *Server) handleQuery(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	if s.queries == nil {
		return mcpgo.NewToolResultError("backend is unavailable"), nil
	}

	switch name := req.GetString("name", ""); name {
	case "average-rating":
		avg, err := s.queries.AverageRating(ctx)
		if err != nil {
			return mcpgo.NewToolResultErrorf("query failed: %s", err.Error()), nil
		}
		return toolResultJSON(map[string]any{"averageRating": avg})

	case "count-by-part-number":
		partNumber := req.GetString("partNumber", "")
		if partNumber == "" {
			return mcpgo.NewToolResultError("partNumber is required"), nil
		}
		count, err := s.queries.CountByPartNumber(ctx, partNumber)
		if err != nil {
			return mcpgo.NewToolResultErrorf("query failed: %s", err.Error()), nil
		}
		return toolResultJSON(map[string]any{"count": count})

	case "by-part-number-prefix":
		prefix := req.GetString("partNumber", "")
		if prefix == "" {
			return mcpgo.NewToolResultError("partNumber is required"), nil
		}
		products, err := s.queries.ProductsByPartNumberPrefix(ctx, prefix)
		if err != nil {
			return mcpgo.NewToolResultErrorf("query failed: %s", err.Error()), nil
		}
		return toolResultJSON(products)

	case "by-price-between":
		min, err := decimal.NewFromString(req.GetString("minPrice", ""))
		if err != nil {
			return mcpgo.NewToolResultError("minPrice must be a decimal number"), nil
		}
		max, err := decimal.NewFromString(req.GetString("maxPrice", ""))
		if err != nil {
			return mcpgo.NewToolResultError("maxPrice must be a decimal number"), nil
		}
		products, err := s.queries.ProductsByPriceBetween(ctx, min, max)
		if err != nil {
			return mcpgo.NewToolResultErrorf("query failed: %s", err.Error()), nil
		}
		return toolResultJSON(products)

	case "by-unit":
		unit := models.UnitOfMeasure(req.GetString("unitOfMeasure", ""))
		if !unit.IsValid() {
			return mcpgo.NewToolResultErrorf("unitOfMeasure must be one of %v", models.ValidUnitsOfMeasure), nil
		}
		products, err := s.queries.ProductsByUnitOfMeasure(ctx, unit)
		if err != nil {
			return mcpgo.NewToolResultErrorf("query failed: %s", err.Error()), nil
		}
		return toolResultJSON(products)

	default:
		return mcpgo.NewToolResultErrorf("unknown query %q", name), nil
	}
}

func (s *Server) handleRelations(_ context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	entity := req.GetString("entity", "")
	id := int64(req.GetInt("id", 0))
	if id <= 0 {
		return mcpgo.NewToolResultError("id is required and must be positive"), nil
	}

	var kind graph.Kind
	switch entity {
	case "locations":
		kind = graph.KindLocation
	case "addresses":
		kind = graph.KindAddress
	case "organizations":
		kind = graph.KindOrganization
	case "persons":
		kind = graph.KindPerson
	default:
		return mcpgo.NewToolResultErrorf("unknown entity %q", entity), nil
	}

	g := graph.Build(s.reg)
	incoming := g.Incoming(kind, id)
	return toolResultJSON(map[string]any{
		"incoming":  incoming,
		"deletable": len(incoming) == 0,
	})
}

func (s *Server) handleStats(_ context.Context, _ mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
	return toolResultJSON(map[string]any{
		"locations":     len(s.reg.Locations.Items()),
		"addresses":     len(s.reg.Addresses.Items()),
		"organizations": len(s.reg.Organizations.Items()),
		"persons":       len(s.reg.Persons.Items()),
		"products":      len(s.reg.Products.Items()),
		"importHistory": len(s.reg.History.Items()),
	})
}
