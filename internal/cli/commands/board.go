package commands

import (
	"TaskBuckets/internal/cli/bootstrap"
	"TaskBuckets/internal/cli/view"
	"TaskBuckets/internal/config"
	"context"
	"fmt"
)

type boardCmd struct{}

func (boardCmd) Name() string        { return "board" }
func (boardCmd) Description() string { return "Show all buckets with their tasks" }
func (boardCmd) Usage() string       { return "board [--view all|active|completed]" }

func (boardCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("board")
	viewFlag := fs.String("view", "all", "filter")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	filter, err := view.ParseFilter(*viewFlag)
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		buckets, err := s.Query.Buckets(ctx)
		if err != nil {
			return err
		}
		tasks, err := s.Query.Tasks(ctx)
		if err != nil {
			return err
		}
		view.RenderBoard(Out, view.BuildBoard(buckets, tasks, filter))
		return nil
	})
}

type refreshCmd struct{}

func (refreshCmd) Name() string        { return "refresh" }
func (refreshCmd) Description() string { return "Drop cached data so the next command refetches it" }
func (refreshCmd) Usage() string       { return "refresh" }

func (refreshCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		if err := s.Refresh(); err != nil {
			return err
		}
		// сразу подтягиваем свежие данные, чтобы следующий запуск работал из кэша
		if _, err := s.Query.Buckets(ctx); err != nil {
			return err
		}
		if _, err := s.Query.Tasks(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Cache refreshed")
		return nil
	})
}

func init() {
	RegisterCmd(boardCmd{})
	RegisterCmd(refreshCmd{})
}
