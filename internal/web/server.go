// Package web serves the slash-command endpoints. Slack gives a command three
// seconds to answer, so handlers only validate and dispatch; the real work
// replies later through the command's response URL.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/rlucioni/courtbot/internal/dispatch"
	"github.com/rlucioni/courtbot/internal/domain/reservation"
	"github.com/rlucioni/courtbot/internal/messages"
	"github.com/rlucioni/courtbot/internal/observability"
	"github.com/rlucioni/courtbot/internal/slack"
)

type Server struct {
	Verifier   slack.Verifier
	Dispatcher dispatch.Dispatcher
	Embargo    *reservation.Embargo
	// BookingChannels limits /book to these channel ids. Empty allows all.
	BookingChannels []string
	Now             func() time.Time
	Logger          *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.AccessLog(s.logger()))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Post("/look", s.handleLook)
	r.Post("/book", s.handleBook)
	return r
}

func (s *Server) handleLook(w http.ResponseWriter, r *http.Request) {
	cmd, ok := s.command(w, r)
	if !ok {
		return
	}
	if slack.WantsHelp(cmd.Text) {
		reply(w, messages.LookHelp)
		return
	}
	if s.Embargo.Active(s.now()) {
		reply(w, messages.Closed(s.Embargo))
		return
	}
	s.dispatch(w, r, dispatch.CommandLook, cmd, messages.Looking)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	cmd, ok := s.command(w, r)
	if !ok {
		return
	}
	if !s.bookingAllowed(cmd.ChannelID) {
		s.logger().Info("rejected book request", zap.String("channel", cmd.ChannelID))
		reply(w, messages.WrongChannel(s.BookingChannels[0]))
		return
	}
	if slack.WantsHelp(cmd.Text) {
		reply(w, messages.BookHelp)
		return
	}
	if s.Embargo.Active(s.now()) {
		reply(w, messages.BookClosed(s.Embargo))
		return
	}
	s.dispatch(w, r, dispatch.CommandBook, cmd, messages.Booking)
}

// command parses and verifies the slash command, answering 400 when either
// fails.
func (s *Server) command(w http.ResponseWriter, r *http.Request) (slackapi.SlashCommand, bool) {
	cmd, err := slack.Parse(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return cmd, false
	}
	if err := s.Verifier.Verify(cmd); err != nil {
		s.logger().Warn("unverified slash command", zap.String("team_id", cmd.TeamID), zap.String("command", cmd.Command))
		http.Error(w, "bad request", http.StatusBadRequest)
		return cmd, false
	}
	return cmd, true
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, c dispatch.Command, cmd slackapi.SlashCommand, ack string) {
	t := dispatch.NewTask(c, cmd.Text, cmd.ResponseURL, cmd.ChannelID, cmd.UserName, s.now())
	if err := t.Validate(); err != nil {
		s.logger().Warn("rejected command", zap.String("command", string(c)), zap.String("user", cmd.UserName), zap.Error(err))
		if c == dispatch.CommandBook {
			reply(w, messages.Usage)
		} else {
			reply(w, messages.Failure)
		}
		return
	}
	if err := s.Dispatcher.Dispatch(r.Context(), t); err != nil {
		s.logger().Error("dispatch failed", zap.String("task_id", t.ID), zap.Error(err))
		reply(w, messages.Failure)
		return
	}
	s.logger().Info("dispatched task", zap.String("task_id", t.ID), zap.String("command", string(c)), zap.String("user", cmd.UserName))
	reply(w, ack)
}

func (s *Server) bookingAllowed(channel string) bool {
	if len(s.BookingChannels) == 0 {
		return true
	}
	for _, c := range s.BookingChannels {
		if c == channel {
			return true
		}
	}
	return false
}

func reply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(slackapi.Msg{ResponseType: slack.ResponseTypeInChannel, Text: text})
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Server) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Start serves h on addr until ctx is done, then drains for up to five seconds.
func Start(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
