package provision

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"setup-arch/internal/config"
	"setup-arch/internal/logger"
	"setup-arch/internal/sequencer"
	"setup-arch/internal/sysexec"
)

// BootstrapHelper builds and installs the AUR helper from source. The build
// prerequisites are installed as root, but everything from the scratch directory
// onwards runs as the target user: makepkg refuses to run as root, and the
// scratch tree lives in the user's home.
//
// Re-running when the helper is already installed still succeeds — makepkg
// rebuilds and pacman reinstalls without complaint — so there is no presence
// guard here. Any failure is fatal, because the secondary package set depends
// on the helper existing.
func BootstrapHelper(cfg config.Config, r sysexec.Runner) sequencer.Result {
	logger.Info("[INFO] Installing build prerequisites (git, base-devel)...\n")
	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.System,
		Program: "pacman",
		Args:    []string{"-S", "--needed", "--noconfirm", "git", "base-devel"},
	})
	if err != nil {
		logger.Error("[ERROR] pacman output:\n%s\n", out)
		return sequencer.Fatal(fmt.Errorf("installing build prerequisites failed: %w", err))
	}

	scratch := filepath.Join(cfg.User.Home, ".cache", "setup-arch", cfg.Helper.Name+"-build")
	return buildHelper(cfg, r, scratch)
}

// buildHelper fetches the helper source into scratch and runs makepkg, all under
// the target user. The scratch directory is removed unconditionally — on success
// there is nothing worth keeping, and on failure a half-built tree would only
// confuse the next run.
func buildHelper(cfg config.Config, r sysexec.Runner, scratch string) sequencer.Result {
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warn("[WARN] Failed to remove build directory %s: %v\n", scratch, err)
		} else {
			logger.Debug("[DEBUG] Removed build directory %s\n", scratch)
		}
	}()

	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.TargetUser,
		Program: "mkdir",
		Args:    []string{"-p", scratch},
	})
	if err != nil {
		logger.Error("[ERROR] mkdir output:\n%s\n", out)
		return sequencer.Fatal(fmt.Errorf("creating build directory %s failed: %w", scratch, err))
	}

	srcDir := filepath.Join(scratch, cfg.Helper.Name)

	logger.Info("[INFO] Fetching %s source from %s...\n", cfg.Helper.Name, cfg.Helper.CloneURL)
	out, err = r.Run(sysexec.Invocation{
		Ctx:     sysexec.TargetUser,
		Program: "git",
		Args:    []string{"clone", cfg.Helper.CloneURL, srcDir},
	})
	if err != nil {
		logger.Warn("[WARN] git clone failed: %v\nOutput: %s\n", err, out)
		logger.Warn("[WARN] Falling back to the AUR snapshot tarball...\n")
		if ferr := fetchSnapshot(cfg, r, scratch, srcDir); ferr != nil {
			return sequencer.Fatal(fmt.Errorf("fetching %s source failed (clone: %v; snapshot: %v)",
				cfg.Helper.Name, err, ferr))
		}
	}

	logger.Info("[INFO] Building and installing %s (this can take a while)...\n", cfg.Helper.Name)
	out, err = r.Run(sysexec.Invocation{
		Ctx:     sysexec.TargetUser,
		Program: "makepkg",
		Args:    []string{"-si", "--noconfirm"},
		Dir:     srcDir,
	})
	if err != nil {
		logger.Error("[ERROR] makepkg output:\n%s\n", out)
		return sequencer.Fatal(fmt.Errorf("building %s failed: %w", cfg.Helper.Name, err))
	}

	logger.Info("[INFO] %s installed.\n", cfg.Helper.Name)
	return sequencer.OK()
}

// fetchSnapshot downloads the AUR snapshot tarball and unpacks it so that the
// helper's PKGBUILD ends up at srcDir. Download and extraction happen as root,
// so the tree is handed back to the target user afterwards — makepkg will not
// build in a directory it cannot write.
func fetchSnapshot(cfg config.Config, r sysexec.Runner, scratch, srcDir string) error {
	tarball := filepath.Join(scratch, path.Base(cfg.Helper.SnapshotURL))
	if err := downloadFile(cfg.Helper.SnapshotURL, tarball); err != nil {
		return err
	}

	topLevel, err := ExtractArchive(tarball, scratch)
	if err != nil {
		return fmt.Errorf("extracting snapshot failed: %w", err)
	}
	// AUR snapshots unpack to a directory named after the package; rename only
	// if that guess does not already match where the build expects the source.
	if topLevel != srcDir {
		if err := os.Rename(topLevel, srcDir); err != nil {
			return fmt.Errorf("moving snapshot into place failed: %w", err)
		}
	}

	out, err := r.Run(sysexec.Invocation{
		Ctx:     sysexec.System,
		Program: "chown",
		Args:    []string{"-R", cfg.User.Name + ":", scratch},
	})
	if err != nil {
		logger.Error("[ERROR] chown output:\n%s\n", out)
		return fmt.Errorf("handing build directory to %s failed: %w", cfg.User.Name, err)
	}
	return nil
}
