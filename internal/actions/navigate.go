package actions

import (
	stderrors "errors"
	"fmt"

	"stackit.dev/st/internal/engine"
	"stackit.dev/st/internal/errors"
	"stackit.dev/st/internal/output"
	"stackit.dev/st/internal/runtime"
)

// Direction represents the traversal direction
type Direction string

const (
	// DirectionTop moves to the last branch of the stack
	DirectionTop Direction = "TOP"
	// DirectionBottom moves to the first branch above trunk
	DirectionBottom Direction = "BOTTOM"
	// DirectionUp moves to the child of the current branch
	DirectionUp Direction = "UP"
	// DirectionDown moves to the parent of the current branch
	DirectionDown Direction = "DOWN"
)

// SwitchBranchAction moves through the current stack and prints one line
// naming the branch that ends up checked out
func SwitchBranchAction(ctx *runtime.Context, direction Direction) error {
	move, err := navigate(ctx, direction)
	if err != nil {
		var ambiguous *errors.AmbiguousStackError
		if !stderrors.As(err, &ambiguous) {
			return err
		}
		move, err = resolveFork(ctx, direction, ambiguous)
		if err != nil {
			return err
		}
	}

	name := output.ColorBranchName(move.Branch, true)
	switch {
	case move.Kind == engine.AlreadyAtTop:
		ctx.Splog.Info("Already at topmost branch `%s`. Cannot move up further.", name)
	case move.Kind == engine.AlreadyAtTrunk:
		ctx.Splog.Info("Already at trunk branch `%s`. Cannot move down further.", name)
	case direction == DirectionTop:
		ctx.Splog.Info("Moved to top branch of stack: `%s`", name)
	case direction == DirectionBottom:
		ctx.Splog.Info("Moved to bottom branch of stack: `%s`", name)
	case direction == DirectionUp:
		ctx.Splog.Info("Moved up to: `%s`", name)
	case direction == DirectionDown:
		ctx.Splog.Info("Moved down to: `%s`", name)
	}
	return nil
}

func navigate(ctx *runtime.Context, direction Direction) (engine.Move, error) {
	switch direction {
	case DirectionTop:
		return ctx.Engine.Top(ctx)
	case DirectionBottom:
		return ctx.Engine.Bottom(ctx)
	case DirectionUp:
		return ctx.Engine.Up(ctx)
	case DirectionDown:
		return ctx.Engine.Down(ctx)
	}
	return engine.Move{}, fmt.Errorf("invalid direction: %s", direction)
}

// resolveFork asks which child to follow at a fan-out. Moving to the top
// keeps asking at every fork on the way up.
func resolveFork(ctx *runtime.Context, direction Direction, ambiguous *errors.AmbiguousStackError) (engine.Move, error) {
	from, err := ctx.Engine.CurrentBranch(ctx)
	if err != nil {
		return engine.Move{}, err
	}
	for {
		child, err := promptForChild(ctx, ambiguous)
		if err != nil {
			return engine.Move{}, err
		}
		if direction != DirectionTop {
			return checkoutFrom(ctx, from, child)
		}

		// follow the chosen child's single-child chain as far as it goes
		target := child
		for {
			children := ctx.Engine.GetChildren(target)
			if len(children) != 1 {
				break
			}
			target = children[0]
		}
		children := ctx.Engine.GetChildren(target)
		if len(children) == 0 {
			return checkoutFrom(ctx, from, target)
		}
		ambiguous = errors.NewAmbiguousStackError(target, children)
	}
}

func checkoutFrom(ctx *runtime.Context, from, target string) (engine.Move, error) {
	move, err := ctx.Engine.Checkout(ctx, target)
	if err != nil {
		return engine.Move{}, err
	}
	move.From = from
	return move, nil
}

func promptForChild(ctx *runtime.Context, ambiguous *errors.AmbiguousStackError) (string, error) {
	msg := fmt.Sprintf("Multiple branches are stacked on %s. Select one to move up:", ambiguous.BranchName)
	selected, err := ctx.Prompter.Select(msg, ambiguous.Children, "")
	if err != nil {
		if stderrors.Is(err, output.ErrInteractiveDisabled) {
			return "", ambiguous
		}
		return "", err
	}
	return selected, nil
}
