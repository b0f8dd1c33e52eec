package commands

import (
	"TaskBuckets/internal/cli/bootstrap"
	"TaskBuckets/internal/config"
	"context"
	"fmt"
	"time"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show who the server thinks you are" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	res, err := bootstrap.Anonymous(cfg).Status(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Status:", res)

	auth := bootstrap.AuthStore(cfg)
	if _, err := auth.Load(); err != nil {
		return nil
	}
	if login, err := auth.LoadLogin(); err == nil {
		fmt.Fprintln(Out, "Login:", login)
		if at, err := auth.LoadLastRefresh(login); err == nil {
			fmt.Fprintln(Out, "Last refresh:", at.Local().Format(time.DateTime))
		}
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
