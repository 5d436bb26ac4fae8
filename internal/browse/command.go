package browse

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ghopen/internal/gitrepo"
)

const (
	commandUseConstant              = "ghopen [revision] [path] [+line]"
	commandShortDescriptionConstant = "Open the GitHub page for the current repository"
	commandLongDescriptionConstant  = "ghopen resolves the repository's GitHub identity from its git remote and opens the repository root, a commit, or a file (optionally at a line) in the default browser. Positional arguments are unordered: git itself decides whether a token names a revision or a path, and +<digits> selects a line."
	commandExampleConstant          = "  ghopen\n  ghopen main\n  ghopen README.md\n  ghopen main src/server.go +42\n  ghopen --print v1.4.0"
	remoteFlagNameConstant          = "remote"
	remoteFlagUsageConstant         = "Git remote to resolve the GitHub repository from (default: the current branch's remote, then origin)."
	printFlagNameConstant           = "print"
	printFlagUsageConstant          = "Print the URL to standard output without opening the browser."
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the browse command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  gitrepo.GitExecutor
	Launcher                     BrowserLauncher
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	WorkingDirectoryProvider     func() (string, error)

	remoteFlagValue string
	printFlagValue  bool
}

// Build constructs the browse command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	command.Flags().StringVar(&builder.remoteFlagValue, remoteFlagNameConstant, "", remoteFlagUsageConstant)
	command.Flags().BoolVar(&builder.printFlagValue, printFlagNameConstant, false, printFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	remoteName := configuration.Remote
	if command.Flags().Changed(remoteFlagNameConstant) {
		remoteName = builder.remoteFlagValue
	}

	printOnly := configuration.Print
	if command.Flags().Changed(printFlagNameConstant) {
		printOnly = builder.printFlagValue
	}

	workingDirectory, workingDirectoryError := builder.resolveWorkingDirectory()
	if workingDirectoryError != nil {
		return workingDirectoryError
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
	if managerError != nil {
		return managerError
	}

	service, serviceError := NewService(ServiceDependencies{
		Repository: repositoryManager,
		Launcher:   ResolveBrowserLauncher(builder.Launcher),
		Output:     command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, browseError := service.Browse(command.Context(), Options{
		WorkingDirectory: workingDirectory,
		RemoteName:       remoteName,
		Tokens:           arguments,
		PrintOnly:        printOnly,
	})
	return browseError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveWorkingDirectory() (string, error) {
	if builder.WorkingDirectoryProvider != nil {
		return builder.WorkingDirectoryProvider()
	}
	return os.Getwd()
}
