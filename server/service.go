package server

import (
	"fmt"
	"log"
	"time"

	"evroute/assistant"
	"evroute/cache"
	"evroute/geocode"
	"evroute/internal"
	"evroute/internal/config"
	"evroute/metrics"
	"evroute/ocm"
	"evroute/osrm"
	"evroute/planner"
	"evroute/telegram"
)

// Service wires the configuration, logging, collaborator clients and the
// HTTP server into one runnable unit.
type Service struct {
	conf   *config.Config
	server *Server
	logger *internal.Logger
	bot    *telegram.Bot
}

func NewService() (*Service, error) {
	conf, err := config.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("configuration failed: %s", err)
	}

	var database internal.Database
	if conf.Mongo.Enabled {
		mongoClient, err := internal.NewMongoClient(conf)
		if err != nil {
			return nil, fmt.Errorf("mongodb setup failed: %s", err)
		}
		if mongoClient != nil {
			database = mongoClient
			log.Println("mongodb is configured and enabled")
		}
	} else {
		log.Println("database is disabled")
	}

	logService := internal.NewLogger(time.UTC)
	if conf.IsDebug != nil {
		logService.SetDebugMode(*conf.IsDebug)
	}
	logService.SetDatabase(database)

	chat := assistant.New(conf.Assistant.URL, conf.Assistant.ApiKey, conf.Assistant.Model)

	upstreamTTL := time.Duration(conf.Cache.UpstreamTTL) * time.Second
	responseCache := cache.NewMemory(upstreamTTL, 2*upstreamTTL)

	handler := NewHandler(
		conf,
		responseCache,
		ocm.New(conf.OCM.URL, conf.OCM.ApiKey),
		osrm.New(conf.OSRM.URL),
		geocode.New(conf.Geocoder.URL, conf.Geocoder.UserAgent),
		chat,
		planner.New(conf.Planner),
	)
	handler.SetLogger(logService)

	service := &Service{
		conf:   conf,
		logger: logService,
	}

	if conf.Telegram.Enabled {
		bot, err := telegram.NewBot(conf.Telegram.ApiKey)
		if err != nil {
			return nil, fmt.Errorf("telegram bot setup failed: %s", err)
		}
		bot.SetAssistant(chat)
		bot.SetDatabase(database)
		service.bot = bot
		log.Println("telegram bot is configured and enabled")
	}

	httpServer := NewServer(conf, handler)
	httpServer.SetLogger(logService)
	service.server = httpServer

	return service, nil
}

func (s *Service) Start() {
	go func() {
		if err := metrics.Listen(s.conf); err != nil {
			s.logger.Error("metrics server failed", err)
			s.notify(fmt.Sprintf("Metrics server failed: %v", err))
		}
	}()

	if s.bot != nil {
		s.bot.Start()
		s.bot.Notify(fmt.Sprintf("Service started, listening on port %s", s.conf.Listen.Port))
	}

	if err := s.server.Start(); err != nil {
		s.logger.Error("http server failed", err)
		s.notify(fmt.Sprintf("HTTP server failed: %v", err))
	}
}

func (s *Service) notify(text string) {
	if s.bot != nil {
		s.bot.Notify(text)
	}
}
