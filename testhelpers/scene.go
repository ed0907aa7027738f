package testhelpers

import (
	"os"
	"testing"
)

// Scene is a temporary git repository for a single test
type Scene struct {
	Dir  string
	Repo *GitRepo
}

// SceneSetup prepares the repository of a scene
type SceneSetup func(*Scene) error

// NewScene creates a scene in a temporary directory. The directory is
// removed when the test ends unless DEBUG is set.
func NewScene(t *testing.T, setup SceneSetup) *Scene {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "st-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if os.Getenv("DEBUG") == "" {
			os.RemoveAll(tmpDir)
		} else {
			t.Logf("keeping scene at %s", tmpDir)
		}
	})

	repo, err := NewGitRepo(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create Git repo: %v", err)
	}

	scene := &Scene{
		Dir:  tmpDir,
		Repo: repo,
	}
	if setup != nil {
		if err := setup(scene); err != nil {
			t.Fatalf("Setup failed: %v", err)
		}
	}
	return scene
}

// BasicSceneSetup creates a single commit on main
func BasicSceneSetup(scene *Scene) error {
	return scene.Repo.CreateChangeAndCommit("1", "1")
}

// StackSceneSetup builds main <- names[0] <- names[1] ..., one commit per
// branch, and leaves the last branch checked out. Links are not written.
func StackSceneSetup(names ...string) SceneSetup {
	return func(scene *Scene) error {
		if err := BasicSceneSetup(scene); err != nil {
			return err
		}
		for _, name := range names {
			if err := scene.Repo.CreateAndCheckoutBranch(name); err != nil {
				return err
			}
			if err := scene.Repo.CreateChangeAndCommit(name, name); err != nil {
				return err
			}
		}
		return nil
	}
}
