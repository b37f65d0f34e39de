// Package redis implements the invite snapshot store on top of Redis.
package redis

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/mediocregopher/radix/v4"

	"doorman/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	client radix.Client
}

func New(url string) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error { return s.client.Close() }

func invitesKey(guildID discord.GuildID) string {
	return "invites:" + guildID.String()
}

func (s *Store) Invites(ctx context.Context, guildID discord.GuildID) (is []discord.Invite, err error) {
	var raw []byte

	err = s.client.Do(ctx, radix.Cmd(&raw, "GET", invitesKey(guildID)))
	if err != nil {
		return is, err
	}

	if raw == nil {
		return is, store.ErrNotFound
	}

	return is, json.Unmarshal(raw, &is)
}

func (s *Store) SetInvites(ctx context.Context, guildID discord.GuildID, is []discord.Invite) error {
	b, err := json.Marshal(is)
	if err != nil {
		return err
	}

	return s.client.Do(ctx, radix.Cmd(nil, "SET", invitesKey(guildID), string(b)))
}

func (s *Store) DeleteInvites(ctx context.Context, guildID discord.GuildID) error {
	return s.client.Do(ctx, radix.Cmd(nil, "DEL", invitesKey(guildID)))
}
