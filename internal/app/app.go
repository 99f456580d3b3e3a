package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/listenroom/server/internal/controller"
	connInmemory "github.com/listenroom/server/internal/repository/connection/inmemory"
	roomInmemory "github.com/listenroom/server/internal/repository/room/inmemory"
	sessionInmemory "github.com/listenroom/server/internal/repository/session/inmemory"
	tokenRedis "github.com/listenroom/server/internal/repository/token/redis"
	"github.com/listenroom/server/internal/service/room"
	"github.com/listenroom/server/pkg/ctxlogger"
	"github.com/listenroom/server/pkg/redisclient"
	"github.com/listenroom/server/pkg/ytvideodata"
)

type AppConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	LogLevel      string `json:"log_level"`
	MembersLimit  int    `json:"members_limit"`
	PlaylistLimit int    `json:"playlist_limit"`
	MessageMaxLen int    `json:"message_max_len"`
	RejoinWindow  int    `json:"rejoin_window_seconds"`
	RedisHost     string `json:"redis_host"`
	RedisPort     int    `json:"redis_port"`
	RedisPassword string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	if cfg.MembersLimit < 1 {
		return fmt.Errorf("members limit must be greater than 0")
	}
	if cfg.PlaylistLimit < 1 {
		return fmt.Errorf("playlist limit must be greater than 0")
	}
	if cfg.MessageMaxLen < 1 {
		return fmt.Errorf("message max length must be greater than 0")
	}
	return nil
}

// videoDataClient adapts the package-level lookup to the collaborator the
// service expects, so tests can stub it out.
type videoDataClient struct{}

func (videoDataClient) Get(videoId string) (*ytvideodata.VideoData, error) {
	return ytvideodata.Get(videoId)
}

func Run(ctx context.Context, cfg *AppConfig) error {
	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	roomRepo := roomInmemory.NewRepo(&roomInmemory.Config{
		MembersLimit:  cfg.MembersLimit,
		PlaylistLimit: cfg.PlaylistLimit,
	})
	sessionRepo := sessionInmemory.NewRepo()
	connRepo := connInmemory.NewRepo()
	tokenRepo := tokenRedis.NewRepo(rc, time.Duration(cfg.RejoinWindow)*time.Second)

	roomService := room.NewService(roomRepo, sessionRepo, connRepo, tokenRepo, videoDataClient{}, &room.Config{
		MessageMaxLen: cfg.MessageMaxLen,
	}, logger)

	controller := controller.NewController(roomService, connRepo, logger)
	server := &http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), Handler: controller.GetRouter()}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	logger.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
