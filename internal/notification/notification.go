// Package notification publishes processing results to the configured
// push channels. Delivery is best effort once a result has been persisted.
package notification

import (
	"context"
	"io"
	"log"
	"slices"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/fishfinder/fishfinder-go/internal/conf"
	"github.com/fishfinder/fishfinder-go/internal/errors"
)

// Publisher sends a subject and body to the notification channel.
type Publisher interface {
	Publish(ctx context.Context, subject, body string) error
}

// ShoutrrrPublisher sends via nicholas-fedor/shoutrrr. One sender covers all
// configured service URLs.
type ShoutrrrPublisher struct {
	urls    []string
	sender  *router.ServiceRouter
	timeout time.Duration
}

// NewShoutrrrPublisher builds and validates a sender over the configured
// service URLs.
func NewShoutrrrPublisher(settings *conf.Settings) (*ShoutrrrPublisher, error) {
	sp := &ShoutrrrPublisher{
		urls:    slices.Clone(settings.Notify.URLs),
		timeout: 10 * time.Second,
	}

	sender, err := shoutrrr.CreateSender(sp.urls...)
	if err != nil {
		return nil, errors.New(err).
			Component("notification").
			Category(errors.CategoryNotification).
			Context("url_count", len(sp.urls)).
			Build()
	}
	sender.Timeout = sp.timeout
	sender.SetLogger(log.New(io.Discard, "", 0))
	sp.sender = sender

	return sp, nil
}

// Publish sends the message to every configured service URL.
func (sp *ShoutrrrPublisher) Publish(ctx context.Context, subject, body string) error {
	_ = ctx // the router handles its own timeouts

	params := stypes.Params{}
	params.SetTitle(subject)

	sendErrs := sp.sender.Send(body, &params)
	for _, err := range sendErrs {
		if err != nil {
			return errors.New(err).
				Component("notification").
				Category(errors.CategoryNotification).
				Build()
		}
	}
	return nil
}

// NoopPublisher discards notifications. Used when notify is disabled.
type NoopPublisher struct{}

// Publish does nothing.
func (NoopPublisher) Publish(ctx context.Context, subject, body string) error {
	return nil
}

// New selects a publisher implementation from the settings.
func New(settings *conf.Settings) (Publisher, error) {
	if !settings.Notify.Enabled {
		return NoopPublisher{}, nil
	}
	return NewShoutrrrPublisher(settings)
}
