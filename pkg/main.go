package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	pkg "git.solsynth.dev/hypernet/scribe/pkg/internal"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/cache"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/database"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/gap"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/grpc"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/http"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/imagestore"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/mq"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/services"
	"git.solsynth.dev/hypernet/scribe/pkg/internal/workers"
	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const banner = ` ____            _ _
/ ___|  ___ _ __(_) |__   ___
\___ \ / __| '__| | '_ \ / _ \
 ___) | (__| |  | | |_) |  __/
|____/ \___|_|  |_|_.__/ \___|`

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(banner))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Hypernet.Scribe"), pkg.AppVersion)
	fmt.Printf("The content service in Hypernet\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("scribe")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	if viper.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	services.SlugLanguage = viper.GetString("slug.language")

	// Connect to database
	db, err := database.NewGorm(databaseConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Connect to message broker
	mqc, err := mq.Dial(viper.GetString("mq.url"))
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connecting to message broker.")
	}
	if err := mqc.DeclareTopology(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when declaring message broker topology.")
	}
	publisher, err := mq.NewPublisher(mqc)
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when creating task publisher.")
	}

	// Collaborators
	pool := gap.NewConnPool()
	localCache, err := cache.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing local cache.")
	}
	directory := gap.NewUserDirectory(pool, directoryConfig(), localCache)

	store, err := imagestore.New(imageStoreConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when configuring image store.")
	}

	// Services
	topics := services.NewTopicService(db, directory, publisher)
	posts := services.NewPostService(db, publisher, imageConfig(), services.PostConfig{
		RequireActiveTopic: viper.GetBool("posts.require_active_topic"),
	})

	// Workers
	ctx, cancel := context.WithCancel(context.Background())
	consumers := make(chan error, 2)
	uploadTimeout := viper.GetDuration("images.upload_timeout")
	uploadWorker := workers.NewUploadWorker(store, posts, uploadTimeout)
	deleteWorker := workers.NewDeleteWorker(store, uploadTimeout)
	go func() {
		consumers <- mq.NewConsumer(consumerConfig(mq.UploadQueue), uploadWorker.Handle).Run(ctx, mqc)
	}()
	go func() {
		consumers <- mq.NewConsumer(consumerConfig(mq.DeleteQueue), deleteWorker.Handle).Run(ctx, mqc)
	}()

	// Configure timed tasks
	threshold := viper.GetDuration("images.pending_threshold")
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	if _, err := quartz.AddFunc(viper.GetString("images.audit_interval"), func() {
		posts.AuditPendingImages(threshold)
	}); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when scheduling pending image audit.")
	}
	quartz.Start()

	// Server
	server := http.NewServer(http.Config{
		Bind:        viper.GetString("bind"),
		PrintRoutes: viper.GetBool("print_routes"),
	}, topics, posts)
	go server.Listen()

	app := grpc.NewGrpc(topics, posts)
	go func() {
		if err := app.Listen(viper.GetString("grpc_bind")); err != nil {
			log.Fatal().Err(err).Msg("An error occurred when starting grpc server...")
		}
	}()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	running := 2
	select {
	case <-quit:
	case err := <-consumers:
		running--
		if err != nil {
			log.Error().Err(err).Msg("An error occurred when consuming tasks, shutting down...")
		}
	}

	quartz.Stop()
	cancel()

	// In-flight tasks settle their acknowledgement before the broker connection goes away
	drain := time.After(viper.GetDuration("mq.drain_timeout"))
drainLoop:
	for ; running > 0; running-- {
		select {
		case <-consumers:
		case <-drain:
			log.Warn().Int("consumers", running).Msg("Timed out waiting for consumers to stop, unacknowledged tasks will be redelivered.")
			break drainLoop
		}
	}

	app.Stop()
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("An error occurred when shutting down server.")
	}
	if err := pool.Close(); err != nil {
		log.Error().Err(err).Msg("An error occurred when closing grpc connections.")
	}
	if err := mqc.Close(); err != nil {
		log.Error().Err(err).Msg("An error occurred when closing message broker connection.")
	}
}
