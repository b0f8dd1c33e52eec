package commands

import (
	"TaskBuckets/internal/cli/bootstrap"
	"TaskBuckets/internal/cli/dnd"
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/model"
	"context"
	"fmt"
)

type moveCmd struct{}

func (moveCmd) Name() string        { return "move" }
func (moveCmd) Description() string { return "Drag a task into another bucket" }
func (moveCmd) Usage() string       { return "move <task-id> <bucket-id>" }

func (moveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	taskID, err := parseID("task", args[0])
	if err != nil {
		return err
	}
	bucketID, err := parseID("bucket", args[1])
	if err != nil {
		return err
	}
	return withSession(cfg, func(s *bootstrap.Session) error {
		tasks, err := s.Query.Tasks(ctx)
		if err != nil {
			return err
		}
		byID := make(map[int64]model.Task, len(tasks))
		for _, t := range tasks {
			byID[t.ID] = t
		}
		ctrl := dnd.NewController(ctx, s.Query, func(id int64) (model.Task, bool) {
			t, ok := byID[id]
			return t, ok
		})

		// синтетический жест: нажатие, смещение на порог, отпускание над бакетом
		ctrl.PointerDown(dnd.TaskID(taskID).String(), dnd.Point{})
		ctrl.PointerMove(dnd.Point{X: dnd.ActivationDistance})
		outcome, done := ctrl.Drop(dnd.BucketID(bucketID).String())

		switch outcome {
		case dnd.SameBucket:
			fmt.Fprintf(Out, "Task #%d is already in bucket #%d\n", taskID, bucketID)
			return nil
		case dnd.Dispatched:
			if err := <-done; err != nil {
				return err
			}
			fmt.Fprintf(Out, "Moved task #%d to bucket #%d\n", taskID, bucketID)
			return nil
		default:
			return fmt.Errorf("task #%d not found", taskID)
		}
	})
}

func init() { RegisterCmd(moveCmd{}) }
