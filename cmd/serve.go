package cmd

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dorkyrobot/yuri/internal/server"
)

func init() {
	register("serve", runServe, "serve [-addr host:port]\tserve the URI operations over HTTP")
}

func runServe(env *Env, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	addr := fs.String("addr", env.Cfg.Serve.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if log.Logger.GetLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(server.Options{Addr: *addr}).Run(ctx)
}
