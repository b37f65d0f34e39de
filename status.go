package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/state"

	"doorman/bot"
	"doorman/common/log"
)

// statusLoop keeps every shard's presence up to date with the server count.
func statusLoop(b *bot.Bot) {
	time.Sleep(5 * time.Second)

	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer cancel()

	updateStatus(ctx, b)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}

		updateStatus(ctx, b)
	}
}

func updateStatus(ctx context.Context, b *bot.Bot) {
	guildCount := 0
	b.ForEach(func(s *state.State) {
		guilds, _ := s.GuildStore.Guilds()
		guildCount += len(guilds)
	})

	status := fmt.Sprintf("%vhelp", strings.Split(os.Getenv("PREFIXES"), ",")[0])
	if guildCount != 0 {
		status += fmt.Sprintf(" | in %v servers", guildCount)
	}

	shard := 0
	b.ForEach(func(s *state.State) {
		str := status
		if b.Router.ShardManager.NumShards() > 1 {
			str = fmt.Sprintf("%v | shard #%v", str, shard)
		}
		shard++

		err := s.Gateway().Send(ctx, &gateway.UpdatePresenceCommand{
			Status: discord.OnlineStatus,
			Activities: []discord.Activity{{
				Name: str,
				Type: discord.GameActivity,
			}},
		})
		if err != nil {
			log.Errorf("Error setting status: %v", err)
		}
	})
}
