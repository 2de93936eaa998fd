package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults returns the built-in run configuration: the package sets and system
// choices applied to a fresh machine when no override file is given. The YAML file
// is an override mechanism, not a requirement — a bare `setup-arch run` provisions
// with exactly this.
func Defaults() Config {
	return Config{
		CorePackages: []string{
			"xorg",
			"plasma",
			"konsole",
			"dolphin",
			"firefox",
			"networkmanager",
			"sddm",
			"zsh",
			"vim",
			"htop",
			"wget",
			"unzip",
			"xdg-user-dirs",
		},
		AurPackages: []string{
			"google-chrome",
			"visual-studio-code-bin",
			"spotify",
			"timeshift",
		},
		Helper: Helper{
			Name:        "yay",
			CloneURL:    "https://aur.archlinux.org/yay.git",
			SnapshotURL: "https://aur.archlinux.org/cgit/aur.git/snapshot/yay.tar.gz",
		},
		Shell: "/bin/zsh",
		Services: Services{
			Network: "NetworkManager",
			Display: "sddm",
		},
		Probe: Probe{
			URL:            "https://archlinux.org",
			TimeoutSeconds: 5,
		},
		LogFile: "/var/log/setup-arch.log",
	}
}

// LoadConfig returns the run configuration, merging an optional YAML override file
// over the built-in defaults. An empty path or a missing file yields the defaults
// unchanged; a file that exists but does not parse is a hard error, because silently
// provisioning with half a config is worse than stopping.
func LoadConfig(configFile string) Config {
	cfg := Defaults()
	if configFile == "" {
		return cfg
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg
		}
		panic("Failed to read config file: " + err.Error())
	}

	// The file only needs to mention the keys it overrides; unmentioned keys keep
	// their default values because we unmarshal on top of the populated struct.
	// List-valued keys (package sets) replace the default list wholesale when set.
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		panic("Failed to unmarshal config file: " + err.Error())
	}

	return cfg
}
