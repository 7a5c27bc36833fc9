package method

import (
	"igfollowers/pkg/config"
	"igfollowers/pkg/instagram"
	"igfollowers/pkg/logger"
	"igfollowers/pkg/ratelimit"
	"igfollowers/pkg/scrapfly"
)

// clientFactory builds real clients that share one request pacer
type clientFactory struct {
	cfg     *config.Config
	limiter ratelimit.Limiter
	logger  logger.Logger
}

// NewClientFactory returns the production ClientFactory
func NewClientFactory(cfg *config.Config, log logger.Logger) ClientFactory {
	return &clientFactory{
		cfg:     cfg,
		limiter: ratelimit.PerMinute(cfg.RateLimit.RequestsPerMinute),
		logger:  log,
	}
}

func (f *clientFactory) Direct(sessionID string) (InstagramAPI, error) {
	transport := instagram.NewHTTPTransport(f.cfg.Instagram, f.logger.WithField("transport", "direct"))
	if sessionID != "" {
		transport.SetSession(sessionID, f.cfg.Instagram.CSRFToken)
	}

	client := instagram.NewClient(transport, f.cfg, f.logger)
	client.SetLimiter(f.limiter)
	return client, nil
}

func (f *clientFactory) ScrapFly(apiKey string) (InstagramAPI, error) {
	sfCfg := f.cfg.ScrapFly
	if apiKey != "" {
		sfCfg.APIKey = apiKey
	}

	transport, err := scrapfly.New(sfCfg, f.cfg.Instagram.Timeout, f.logger.WithField("transport", "scrapfly"))
	if err != nil {
		return nil, err
	}

	client := instagram.NewClient(transport, f.cfg, f.logger)
	client.SetLimiter(f.limiter)
	return client, nil
}
