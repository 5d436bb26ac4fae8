package browse

import (
	"go.uber.org/zap"

	"github.com/temirov/ghopen/internal/execshell"
	"github.com/temirov/ghopen/internal/gitrepo"
	"github.com/temirov/ghopen/internal/ui"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing gitrepo.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (gitrepo.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}

	if humanReadableLogging {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}

	return shellExecutor, nil
}

// ResolveBrowserLauncher returns the provided launcher or the system default browser launcher.
func ResolveBrowserLauncher(existing BrowserLauncher) BrowserLauncher {
	if existing != nil {
		return existing
	}
	return SystemBrowserLauncher{}
}
