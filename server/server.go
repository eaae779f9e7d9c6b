package server

import (
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"evroute/internal"
	"evroute/internal/config"
	"evroute/utility"
)

const (
	stationsEndpoint      = "/api/ev-stations"
	cityStationsEndpoint  = "/api/stations"
	routeChargersEndpoint = "/api/route-chargers"
	planTripEndpoint      = "/api/plan-trip"
	chatbotEndpoint       = "/api/chatbot"
	chatWsEndpoint        = "/ws/chat"
	healthEndpoint        = "/healthz"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	upgrader   websocket.Upgrader
	handler    *Handler
	logger     internal.LogHandler
}

func NewServer(conf *config.Config, handler *Handler) *Server {
	server := Server{
		conf:     conf,
		handler:  handler,
		upgrader: websocket.Upgrader{},
	}
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}
	return &server
}

func (s *Server) SetLogger(logger internal.LogHandler) {
	s.logger = logger
}

func (s *Server) Register(router *httprouter.Router) {
	router.GET(stationsEndpoint, s.handler.StationsNearby)
	router.GET(cityStationsEndpoint, s.handler.StationsByCity)
	router.GET(routeChargersEndpoint, s.handler.RouteChargers)
	router.POST(planTripEndpoint, s.handler.PlanTrip)
	router.POST(chatbotEndpoint, s.handler.Chatbot)
	router.GET(chatWsEndpoint, s.handleChatWs)
	router.GET(healthEndpoint, s.handler.Health)
}

func (s *Server) Start() error {
	if s.conf == nil {
		return utility.Err("configuration not loaded")
	}
	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	s.logger.Debug(fmt.Sprintf("starting server on %s", serverAddress))
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}
	if s.conf.Listen.TLS {
		s.logger.Debug("starting https TLS server")
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Debug("starting http server")
		err = s.httpServer.Serve(listener)
	}
	return err
}
