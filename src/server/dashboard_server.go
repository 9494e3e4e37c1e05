package server

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"stock-dashboard/src/analysis"
	"stock-dashboard/src/charts"
	"stock-dashboard/src/config"
	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

type DashboardServer struct {
	Config  *config.Config
	Logger  *logger.Logger
	Service interfaces.IDashboardService
	Charts  *charts.ChartRenderer
	engine  *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MDashboardSnapshot // Strongly typed and Buffered Queue
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Local cache
	latestState *models.MDashboardSnapshot
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *config.Config, service interfaces.IDashboardService, renderer *charts.ChartRenderer) *DashboardServer {
	// Set Gin mode
	if strings.ToUpper(cfg.LogLevel) != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:  cfg,
		Logger:  logger.NewLogger(cfg.LogLevel, "DashboardServer"),
		Service: service,
		Charts:  renderer,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered channel to prevent lock/blocking
		broadcast:  make(chan *models.MDashboardSnapshot, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		latestState: &models.MDashboardSnapshot{
			Type:   "INITIAL",
			Quotes: make(map[string]models.MQuote),
		},
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/watchlist", s.getWatchlist)
	s.engine.GET("/api/overview", s.getOverview)
	s.engine.GET("/api/history/:symbol", s.getHistory)
	s.engine.GET("/api/compare", s.getCompare)
	s.engine.GET("/api/forecast/:symbol", s.getForecast)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *DashboardServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

// Stop signals the hub loop to exit. The work channels stay open so a
// late register or broadcast never hits a closed channel.
func (s *DashboardServer) Stop() error {
	close(s.done)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": timestamp,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"refresh_interval_seconds": s.Config.Refresh.IntervalSeconds,
		"history_range_days":       s.Config.History.DefaultRangeDays,
		"forecast_min_horizon":     s.Config.Forecast.MinHorizonDays,
		"forecast_max_horizon":     s.Config.Forecast.MaxHorizonDays,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getWatchlist(c *gin.Context) {
	c.JSON(200, gin.H{"symbols": s.Config.Watchlist})
}

// -----------------------------------------------------------------------------

// getOverview returns the latest refresh snapshot plus the overview charts,
// for clients that poll instead of holding a websocket open.
func (s *DashboardServer) getOverview(c *gin.Context) {
	s.stateMutex.RLock()
	state := s.latestState
	s.stateMutex.RUnlock()

	c.JSON(200, gin.H{
		"snapshot":          state,
		"movers_chart":      s.Charts.RenderMoversChart(state.Movers),
		"sector_chart":      s.Charts.RenderSectorChart(state.Sectors),
		"most_active_chart": s.Charts.RenderMostActiveChart(state.MostActive),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getHistory(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	if !s.Config.InWatchlist(symbol) {
		c.JSON(400, gin.H{"error": fmt.Sprintf("unknown symbol %q: not in watchlist", symbol)})
		return
	}

	interval := c.DefaultQuery("interval", analysis.IntervalDaily)
	if !analysis.ValidInterval(interval) {
		c.JSON(400, gin.H{"error": fmt.Sprintf("unsupported interval %q", interval)})
		return
	}
	candles := c.DefaultQuery("style", "line") == "candles"

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -s.Config.History.DefaultRangeDays)
	var err error
	if v := c.Query("start"); v != "" {
		if start, err = time.Parse("2006-01-02", v); err != nil {
			c.JSON(400, gin.H{"error": fmt.Sprintf("invalid start date %q", v)})
			return
		}
	}
	if v := c.Query("end"); v != "" {
		if end, err = time.Parse("2006-01-02", v); err != nil {
			c.JSON(400, gin.H{"error": fmt.Sprintf("invalid end date %q", v)})
			return
		}
	}
	if !end.After(start) {
		c.JSON(400, gin.H{"error": "end date must be after start date"})
		return
	}

	series, chart, err := s.Service.History(symbol, start, end, interval, candles)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(200, gin.H{"symbol": symbol, "series": series, "chart": chart})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getCompare(c *gin.Context) {
	symbolA := strings.ToUpper(c.Query("a"))
	symbolB := strings.ToUpper(c.Query("b"))
	if symbolA == "" || symbolB == "" || symbolA == symbolB {
		c.JSON(400, gin.H{"error": "query needs two distinct symbols: ?a=X&b=Y"})
		return
	}
	for _, sym := range []string{symbolA, symbolB} {
		if !s.Config.InWatchlist(sym) {
			c.JSON(400, gin.H{"error": fmt.Sprintf("unknown symbol %q: not in watchlist", sym)})
			return
		}
	}

	comparison, chart, err := s.Service.Compare(symbolA, symbolB)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(200, gin.H{"comparison": comparison, "chart": chart})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getForecast(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	if !s.Config.InWatchlist(symbol) {
		c.JSON(400, gin.H{"error": fmt.Sprintf("unknown symbol %q: not in watchlist", symbol)})
		return
	}

	horizon := s.Config.Forecast.MinHorizonDays
	if v := c.Query("horizon"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(400, gin.H{"error": fmt.Sprintf("invalid horizon %q", v)})
			return
		}
		horizon = parsed
	}

	result, chart, err := s.Service.ForecastSymbol(symbol, horizon)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(200, gin.H{"forecast": result, "chart": chart})
}

// -----------------------------------------------------------------------------
// Error Mapping
// -----------------------------------------------------------------------------

// renderError maps the domain error taxonomy onto HTTP statuses: a bad
// request stays 400, a series too short to model is 422, a provider outage
// is 502. Nothing here is fatal to the process.
func (s *DashboardServer) renderError(c *gin.Context, err error) {
	switch {
	case helpers.IsInvalidHorizon(err):
		c.JSON(400, gin.H{"error": err.Error()})
	case helpers.IsInsufficientHistory(err):
		c.JSON(422, gin.H{"error": err.Error()})
	case helpers.IsDataUnavailable(err):
		c.JSON(502, gin.H{"error": err.Error()})
	default:
		s.Logger.Error("Unhandled request error: %v", err)
		c.JSON(500, gin.H{"error": "internal error"})
	}
}
