package commands

import (
	"TaskBuckets/internal/cli/bootstrap"
	"TaskBuckets/internal/cli/view"
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/model"
	"context"
	"errors"
	"flag"
	"fmt"
)

type tasksCmd struct{}

func (tasksCmd) Name() string        { return "tasks" }
func (tasksCmd) Description() string { return "List tasks, optionally of one bucket" }
func (tasksCmd) Usage() string       { return "tasks [--bucket <id>] [--view all|active|completed]" }

func (tasksCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("tasks")
	bucket := fs.String("bucket", "", "bucket id")
	viewFlag := fs.String("view", "all", "filter")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	filter, err := view.ParseFilter(*viewFlag)
	if err != nil {
		return err
	}
	var bucketID int64
	if *bucket != "" {
		if bucketID, err = parseID("bucket", *bucket); err != nil {
			return err
		}
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		var (
			list []model.Task
			err  error
		)
		if bucketID > 0 {
			list, err = s.Query.TasksByBucket(ctx, bucketID)
		} else {
			list, err = s.Query.Tasks(ctx)
		}
		if err != nil {
			return err
		}
		view.RenderTasks(Out, filter.Apply(list))
		return nil
	})
}

type taskAddCmd struct{}

func (taskAddCmd) Name() string        { return "task-add" }
func (taskAddCmd) Description() string { return "Create a task (in the Inbox unless --bucket is given)" }
func (taskAddCmd) Usage() string {
	return "task-add [--priority p] [--description d] [--bucket id] <title>"
}

func (taskAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("task-add")
	priority := fs.String("priority", "", "low|medium|high|urgent")
	description := fs.String("description", "", "description")
	bucket := fs.String("bucket", "", "bucket id")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	p, err := model.ParsePriority(*priority)
	if err != nil {
		return err
	}
	in := model.TaskInput{Title: fs.Arg(0), Priority: p}
	if *description != "" {
		in.Description = description
	}
	if *bucket != "" {
		if in.BucketID, err = parseID("bucket", *bucket); err != nil {
			return err
		}
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		if in.BucketID == 0 {
			inbox, err := inboxID(ctx, s)
			if err != nil {
				return err
			}
			in.BucketID = inbox
		}
		t, err := s.Query.CreateTask(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Created task #%d %s\n", t.ID, view.TaskLine(*t))
		return nil
	})
}

// inboxID находит Inbox среди бакетов пользователя (список бакетов его создаёт).
func inboxID(ctx context.Context, s *bootstrap.Session) (int64, error) {
	buckets, err := s.Query.Buckets(ctx)
	if err != nil {
		return 0, err
	}
	for _, b := range buckets {
		if b.IsInbox() {
			return b.ID, nil
		}
	}
	return 0, errors.New("inbox bucket not found")
}

type taskEditCmd struct{}

func (taskEditCmd) Name() string        { return "task-edit" }
func (taskEditCmd) Description() string { return "Change task fields" }
func (taskEditCmd) Usage() string {
	return "task-edit [--title t] [--description d] [--priority p] [--bucket id] <id>"
}

func (taskEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("task-edit")
	title := fs.String("title", "", "title")
	description := fs.String("description", "", "description (empty clears it)")
	priority := fs.String("priority", "", "low|medium|high|urgent")
	bucket := fs.String("bucket", "", "bucket id")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}
	id, err := parseID("task", fs.Arg(0))
	if err != nil {
		return err
	}

	var patch model.TaskPatch
	var visitErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "description":
			patch.Description = description
		case "priority":
			p := model.Priority(*priority)
			patch.Priority = &p
		case "bucket":
			b, err := parseID("bucket", *bucket)
			if err != nil {
				visitErr = err
				return
			}
			patch.BucketID = &b
		}
	})
	if visitErr != nil {
		return visitErr
	}
	if patch.Empty() {
		return ErrUsage
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		t, err := s.Query.UpdateTask(ctx, id, patch)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Updated %s\n", view.TaskLine(*t))
		return nil
	})
}

type taskToggleCmd struct{}

func (taskToggleCmd) Name() string        { return "task-toggle" }
func (taskToggleCmd) Description() string { return "Mark a task done or not done" }
func (taskToggleCmd) Usage() string       { return "task-toggle <id>" }

func (taskToggleCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		t, err := s.Query.ToggleTask(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, view.TaskLine(*t))
		return nil
	})
}

type taskDeleteCmd struct{}

func (taskDeleteCmd) Name() string        { return "task-delete" }
func (taskDeleteCmd) Description() string { return "Delete a task" }
func (taskDeleteCmd) Usage() string       { return "task-delete <id>" }

func (taskDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		if err := s.Query.DeleteTask(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(Out, "Deleted task #%d\n", id)
		return nil
	})
}

func init() {
	RegisterCmd(tasksCmd{})
	RegisterCmd(taskAddCmd{})
	RegisterCmd(taskEditCmd{})
	RegisterCmd(taskToggleCmd{})
	RegisterCmd(taskDeleteCmd{})
}
