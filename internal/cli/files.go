// Package cli provides the one-shot file commands.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/filedeck/filedeck/internal/localfs"
	"github.com/filedeck/filedeck/internal/progress"
	"github.com/filedeck/filedeck/internal/session"
)

// newMkdirCmd creates the 'mkdir' command.
func newMkdirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <path> [path...]",
		Short: "Create folders",
		Long: `Create one folder per argument. The parent must exist and the name must be
free; existing folders are reported, never merged.

Examples:
  filedeck mkdir reports
  filedeck mkdir ~/projects/new "~/projects/other one"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if err := createEntry(arg, true); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// newTouchCmd creates the 'touch' command.
func newTouchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "touch <path> [path...]",
		Short: "Create empty files",
		Long: `Create one empty file per argument. Unlike the POSIX tool, an existing file
is an error and is left untouched.

Examples:
  filedeck touch notes.txt
  filedeck touch a.md b.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if err := createEntry(arg, false); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// createEntry runs the create-folder or create-file edit for path.
func createEntry(path string, folder bool) error {
	logger := GetLogger()
	dir, name, err := splitPath(path)
	if err != nil {
		return err
	}
	sess, err := openSession(dir, nil)
	if err != nil {
		return err
	}

	if folder {
		_, err = sess.BeginCreateFolder()
	} else {
		_, err = sess.BeginCreateFile()
	}
	if err != nil {
		return err
	}
	created, err := sess.CommitEdit(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	logger.Info().Str("dir", dir).Str("name", created).Bool("folder", folder).Msg("Created")
	fmt.Printf("✓ Created %s\n", created)
	return nil
}

// newRenameCmd creates the 'rename' command.
func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a file or folder in place",
		Long: `Rename an entry inside its own folder. The new name is a bare name, not a
path, and an existing entry with that name is never overwritten.

Examples:
  filedeck rename draft.txt final.txt
  filedeck rename ~/photos/IMG_0001.jpg beach.jpg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			newName := args[1]
			if strings.ContainsAny(newName, `/\`) {
				return fmt.Errorf("new name %q must not contain a path separator", newName)
			}
			dir, oldName, err := splitPath(args[0])
			if err != nil {
				return err
			}
			sess, err := openSession(dir, nil)
			if err != nil {
				return err
			}
			if err := sess.BeginRename(oldName); err != nil {
				return err
			}
			if _, err := sess.CommitEdit(newName); err != nil {
				return fmt.Errorf("failed to rename %s: %w", oldName, err)
			}

			GetLogger().Info().Str("dir", dir).Str("from", oldName).Str("to", newName).Msg("Renamed")
			fmt.Printf("✓ Renamed %s to %s\n", oldName, newName)
			return nil
		},
	}
}

// newCpCmd creates the 'cp' command.
func newCpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cp <source> [source...] <folder>",
		Short: "Copy files and folders into a folder",
		Long: `Copy every source into the destination folder, the way paste works in the
browsers. Folders are copied recursively and merged into existing folders of the
same name. Existing destination names are confirmed once for the whole batch.

Examples:
  filedeck cp report.pdf ~/backup
  filedeck cp src docs ~/backup --yes`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return copyInto(args[:len(args)-1], args[len(args)-1])
		},
	}
}

// copyInto fills the session clipboard with sources and pastes it into dest.
func copyInto(sources []string, dest string) error {
	srcs, err := absPaths(sources)
	if err != nil {
		return err
	}
	dests, err := absPaths([]string{dest})
	if err != nil {
		return err
	}
	if err := requireDir(dests[0]); err != nil {
		return err
	}

	sess, err := openSession(dests[0], newBatchReporter(len(srcs)))
	if err != nil {
		return err
	}
	sess.Copy(srcs, false)
	err = sess.Paste(newPrompter().Confirmer())
	if errors.Is(err, session.ErrCancelled) {
		fmt.Println("Copy cancelled")
		return nil
	}
	return err
}

// newMvCmd creates the 'mv' command.
func newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <source> [source...] <folder>",
		Short: "Move files and folders into a folder",
		Long: `Move every source into the destination folder, the way dropping a selection
onto a folder works in the browsers. Existing files in the destination are
confirmed once and then overwritten. Moving a folder into itself is an error.
Use 'rename' to change a name in place.

Examples:
  filedeck mv *.log archive
  filedeck mv build dist ~/old --yes`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcs, err := absPaths(args[:len(args)-1])
			if err != nil {
				return err
			}
			dests, err := absPaths(args[len(args)-1:])
			if err != nil {
				return err
			}
			if err := requireDir(dests[0]); err != nil {
				return err
			}

			sess, err := openSession(dests[0], newBatchReporter(len(srcs)))
			if err != nil {
				return err
			}
			err = sess.MoveInto(dests[0], srcs, newPrompter().Confirmer())
			switch {
			case errors.Is(err, session.ErrCancelled):
				fmt.Println("Move cancelled")
				return nil
			case errors.Is(err, session.ErrSelfMove):
				return fmt.Errorf("cannot move into %s: %w", dests[0], err)
			case err != nil:
				return err
			}
			GetLogger().Info().Int("count", len(srcs)).Str("dest", dests[0]).Msg("Move finished")
			fmt.Printf("✓ Moved %d item(s) to %s\n", len(srcs), dests[0])
			return nil
		},
	}
}

// newRmCmd creates the 'rm' command.
func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path> [path...]",
		Short: "Delete files and folders",
		Long: `Delete every path after a single confirmation. Folders are removed
recursively. A path that cannot be removed is reported and the rest are still
attempted.

WARNING: This operation cannot be undone!

Examples:
  filedeck rm old.txt
  filedeck rm build dist --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}
			dir, _, err := splitPath(paths[0])
			if err != nil {
				return err
			}

			sess, err := openSession(dir, progress.NewCLIProgress())
			if err != nil {
				return err
			}
			removed, err := sess.Delete(paths, newPrompter().Confirmer())
			if errors.Is(err, session.ErrCancelled) {
				fmt.Println("Deletion cancelled")
				return nil
			}
			fmt.Printf("✓ Deleted %d of %d item(s)\n", removed, len(paths))
			return err
		},
	}
}

// newBulkRenameCmd creates the 'bulk-rename' command.
func newBulkRenameCmd() *cobra.Command {
	var (
		prefix    string
		extension string
		start     int
		only      []string
		all       bool
		preview   bool
	)

	cmd := &cobra.Command{
		Use:   "bulk-rename [folder]",
		Short: "Rename the files of a folder to prefix + counter",
		Long: `Rename files to {prefix}{counter}{suffix} in listing order, keeping each
file's suffix. Folders are never renamed. The counter starts at --start and
grows by one per renamed file. The first name collision stops the batch;
files already renamed keep their new names.

Examples:
  filedeck bulk-rename ~/photos --prefix holiday_ --ext jpg
  filedeck bulk-rename . --prefix part --start 0 --only a.txt --only b.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dirs, err := absPaths([]string{dir})
			if err != nil {
				return err
			}

			opts := session.BulkRenameOptions{
				OnlySelected: len(only) > 0,
				Extension:    strings.TrimPrefix(extension, "."),
				Prefix:       prefix,
				Start:        start,
			}
			if preview {
				fmt.Printf("First new name: %s\n", session.PreviewName(opts))
				return nil
			}

			sess, err := openSession(dirs[0], progress.NewCLIProgress())
			if err != nil {
				return err
			}
			if all {
				sess.SetShowHidden(true)
			}
			renamed, err := sess.BulkRename(opts, only)
			if err != nil {
				return fmt.Errorf("%s: %w", session.Message(err), err)
			}

			GetLogger().Info().Int("count", renamed).Str("dir", dirs[0]).Msg("Bulk rename finished")
			fmt.Printf("✓ Renamed %d file(s)\n", renamed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Prefix of the new names")
	cmd.Flags().StringVarP(&extension, "ext", "e", "", "Only rename files with this suffix (e.g. jpg)")
	cmd.Flags().IntVarP(&start, "start", "s", 1, "First counter value")
	cmd.Flags().StringArrayVar(&only, "only", nil, "Only rename this file (can be specified multiple times)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List hidden files so --only can name them")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print the first new name and exit")

	return cmd
}

// newCopyPathCmd creates the 'copy-path' command.
func newCopyPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy-path <path> [path...]",
		Short: "Copy absolute paths to the system clipboard",
		Long: `Write the absolute paths, joined by ", ", to the system clipboard.

Examples:
  filedeck copy-path report.pdf
  filedeck copy-path a.txt b.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}
			sess, err := openSession(".", nil)
			if err != nil {
				return err
			}
			if err := sess.CopyPaths(paths); err != nil {
				return fmt.Errorf("failed to copy paths: %w", err)
			}
			fmt.Println(strings.Join(paths, ", "))
			return nil
		},
	}
}

// requireDir fails unless path is an existing directory.
func requireDir(path string) error {
	entry, err := localfs.NewOS().Stat(path)
	if err != nil {
		return fmt.Errorf("destination %s: %w", path, err)
	}
	if !entry.IsDir() {
		return fmt.Errorf("destination %s is not a folder", path)
	}
	return nil
}
