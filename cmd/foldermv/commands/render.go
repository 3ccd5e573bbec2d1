package commands

import (
	"github.com/walteh/foldermv/pkg/log"
	"github.com/walteh/foldermv/pkg/relocate"
)

// logOperation converts an orchestrator outcome into a console line.
func logOperation(outcome relocate.Outcome, files int, detail string) log.FolderOperation {
	return log.FolderOperation{
		Folder:  outcome.Folder.String(),
		OldPath: outcome.OldPath,
		NewPath: outcome.NewPath,
		Action:  outcome.Action.String(),
		Detail:  detail,
		IsMoved: outcome.Action == relocate.ActionMoved,
		IsSkip: outcome.Action == relocate.ActionSkipNotFound ||
			outcome.Action == relocate.ActionSkipRedirected,
		IsError: outcome.Action == relocate.ActionFailed,
		Files:   files,
	}
}
