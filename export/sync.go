package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ezBadminton/badmintondraw/core"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

var (
	ErrInvalidURL = errors.New("invalid web app url")
	ErrSyncFailed = errors.New("sheet sync failed")
)

var errTooManyRedirects = errors.New("too many redirects")

const PayloadVersion = "1.0"

const maxRedirects = 5

// The document that the spreadsheet web app receives
type Payload struct {
	Version        string            `json:"version"`
	TournamentName string            `json:"tournamentName"`
	Venue          string            `json:"venue"`
	Date           string            `json:"date"`
	Organizer      string            `json:"organizer"`
	Categories     []CategoryPayload `json:"categories"`
}

type CategoryPayload struct {
	Name     string `json:"name"`
	DrawDone bool   `json:"isDrawDone"`
	Matches  []Row  `json:"matches"`
}

func NewPayload(t *core.Tournament) Payload {
	payload := Payload{
		Version:        PayloadVersion,
		TournamentName: t.Name,
		Venue:          orBlank(t.Venue),
		Date:           t.Date,
		Organizer:      orBlank(t.Organizer),
		Categories:     make([]CategoryPayload, 0, len(t.Categories)),
	}
	for _, c := range t.Categories {
		payload.Categories = append(payload.Categories, CategoryPayload{
			Name:     c.Name,
			DrawDone: c.DrawDone,
			Matches:  Rows(c),
		})
	}
	return payload
}

// SheetSyncer posts tournaments to a spreadsheet web app. Posts
// are spaced at least interval apart.
type SheetSyncer struct {
	url     string
	client  *fasthttp.Client
	limiter *rate.Limiter
	timeout time.Duration
	logger  zerolog.Logger
}

func NewSheetSyncer(url string, interval, timeout time.Duration, logger zerolog.Logger) (*SheetSyncer, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}

	return &SheetSyncer{
		url: url,
		client: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Posts the tournament. The body is sent as text/plain which the
// web app reads as a string.
func (s *SheetSyncer) Sync(ctx context.Context, t *core.Tournament) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(NewPayload(t))
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.timeout)
	}
	status, answer, err := s.post(body, deadline)
	if err != nil {
		s.logger.Error().Err(err).Str("tournament", t.ID).Msg("sheet sync request failed")
		return fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	if status != fasthttp.StatusOK || strings.HasPrefix(answer, "ERROR") {
		s.logger.Warn().
			Int("status", status).
			Str("answer", answer).
			Str("tournament", t.ID).
			Msg("sheet sync rejected")
		return fmt.Errorf("%w: status %d: %v", ErrSyncFailed, status, answer)
	}

	s.logger.Info().
		Str("tournament", t.ID).
		Int("categories", len(t.Categories)).
		Int("bytes", len(body)).
		Msg("tournament synced")
	return nil
}

// Posts the body and returns the status and the answer of the
// web app. The web app answers a post with a redirect to its
// output which is fetched with a GET.
func (s *SheetSyncer) post(body []byte, deadline time.Time) (int, string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("text/plain")
	req.SetBody(body)

	for range maxRedirects + 1 {
		if err := s.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, "", err
		}

		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) || len(location) == 0 {
			return resp.StatusCode(), strings.TrimSpace(string(resp.Body())), nil
		}

		req.URI().UpdateBytes(location)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Del(fasthttp.HeaderContentType)
		req.ResetBody()
		resp.Reset()
	}
	return 0, "", errTooManyRedirects
}
