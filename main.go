package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/utils/ws"
	"github.com/getsentry/sentry-go"
	_ "github.com/joho/godotenv/autoload"
	"github.com/starshine-sys/bcr"

	"doorman/bot"
	"doorman/common/log"
	"doorman/db"
	"doorman/invites"
	"doorman/stats"
	"doorman/store/redis"
	"doorman/support"
)

func main() {
	ws.WSDebug = log.Named("ws").Debug
	ws.WSError = func(err error) {
		log.Named("ws").Error(err)
	}

	intents := gateway.IntentGuilds | gateway.IntentGuildMembers |
		gateway.IntentGuildInvites | gateway.IntentGuildWebhooks |
		gateway.IntentGuildMessages | gateway.IntentDirectMessages

	sf, _ := discord.ParseSnowflake(os.Getenv("OWNER"))

	r, err := bcr.NewWithIntents(
		os.Getenv("TOKEN"),
		[]discord.UserID{discord.UserID(sf)},
		strings.Split(os.Getenv("PREFIXES"), ","),
		intents,
	)
	if err != nil {
		log.Fatalf("Error creating bot: %v", err)
	}
	r.EmbedColor = bcr.ColourPurple

	var hub *sentry.Hub
	if os.Getenv("SENTRY_URL") != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn: os.Getenv("SENTRY_URL"),
		})
		if err != nil {
			log.Fatalf("Error initialising Sentry: %v", err)
		}
		hub = sentry.CurrentHub()
	}

	database, err := db.New(os.Getenv("DATABASE_URL"), hub)
	if err != nil {
		log.Fatalf("Error opening database connection: %v", err)
	}
	log.Info("Opened database connection.")

	st, err := redis.New(os.Getenv("REDIS"))
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	log.Info("Connected to Redis.")

	var statsClient *stats.Client
	if os.Getenv("INFLUX_URL") != "" {
		statsClient = stats.New(
			os.Getenv("INFLUX_URL"),
			os.Getenv("INFLUX_TOKEN"),
			os.Getenv("INFLUX_ORG"),
			os.Getenv("INFLUX_BUCKET"),
		)
		log.Info("Sending statistics to InfluxDB.")
	}

	b := bot.New(r, database, st, statsClient)

	invites.Init(b)
	support.Init(b)

	if err := b.Open(context.Background()); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	// always shut down cleanly, even in the event of a crash
	defer func() {
		database.Pool.Close()
		log.Info("Closed database connection.")
		if err := st.Close(); err != nil {
			log.Errorf("Error closing invite store: %v", err)
		}
		b.Close()
		log.Info("Disconnected from Discord.")
	}()

	log.Info("Connected to Discord. Press Ctrl-C or send an interrupt signal to stop.")

	s := b.State(0)
	botUser, _ := s.Me()
	log.Infof("User: %v#%v (%v)", botUser.Username, botUser.Discriminator, botUser.ID)
	r.Bot = botUser
	// normally creating a Context would do this, but as we set the user above, that doesn't work
	r.Prefixes = append(r.Prefixes, "<@"+r.Bot.ID.String()+">", "<@!"+r.Bot.ID.String()+">")

	go statusLoop(b)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info("Interrupt signal received. Shutting down...")
}
