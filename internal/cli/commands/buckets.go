package commands

import (
	"TaskBuckets/internal/cli/bootstrap"
	"TaskBuckets/internal/cli/view"
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/model"
	"context"
	"flag"
	"fmt"
)

type bucketsCmd struct{}

func (bucketsCmd) Name() string        { return "buckets" }
func (bucketsCmd) Description() string { return "List buckets (Inbox is created on first use)" }
func (bucketsCmd) Usage() string       { return "buckets" }

func (bucketsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		list, err := s.Query.Buckets(ctx)
		if err != nil {
			return err
		}
		view.RenderBuckets(Out, list)
		return nil
	})
}

type bucketAddCmd struct{}

func (bucketAddCmd) Name() string        { return "bucket-add" }
func (bucketAddCmd) Description() string { return "Create a bucket" }
func (bucketAddCmd) Usage() string       { return "bucket-add <name> [#RRGGBB]" }

func (bucketAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	in := model.BucketInput{Name: args[0], Color: model.InboxColor}
	if len(args) == 2 {
		in.Color = args[1]
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		b, err := s.Query.CreateBucket(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Created bucket #%d %s\n", b.ID, b.Name)
		return nil
	})
}

type bucketEditCmd struct{}

func (bucketEditCmd) Name() string        { return "bucket-edit" }
func (bucketEditCmd) Description() string { return "Rename or recolor a bucket" }
func (bucketEditCmd) Usage() string       { return "bucket-edit [--name <name>] [--color #RRGGBB] <id>" }

func (bucketEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("bucket-edit")
	name := fs.String("name", "", "new name")
	color := fs.String("color", "", "new color")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	id, err := parseID("bucket", fs.Arg(0))
	if err != nil {
		return err
	}
	var patch model.BucketPatch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			patch.Name = name
		case "color":
			patch.Color = color
		}
	})
	if patch.Empty() {
		return ErrUsage
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		b, err := s.Query.UpdateBucket(ctx, id, patch)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Updated bucket #%d %s %s\n", b.ID, b.Name, b.Color)
		return nil
	})
}

type bucketDeleteCmd struct{}

func (bucketDeleteCmd) Name() string        { return "bucket-delete" }
func (bucketDeleteCmd) Description() string { return "Delete a bucket and all its tasks" }
func (bucketDeleteCmd) Usage() string       { return "bucket-delete <id>" }

func (bucketDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID("bucket", args[0])
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		if err := s.Query.DeleteBucket(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted bucket #%d\n", id)
		return nil
	})
}

func init() {
	RegisterCmd(bucketsCmd{})
	RegisterCmd(bucketAddCmd{})
	RegisterCmd(bucketEditCmd{})
	RegisterCmd(bucketDeleteCmd{})
}
