package k8s

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// LoadRESTConfig builds the client configuration. Explicit master or
// kubeconfig settings win; otherwise the in-cluster service account and then
// the default kubeconfig of the user are tried. ErrNoCredentials is returned
// when none of them is available.
func LoadRESTConfig(master, kubeconfig string) (*rest.Config, error) {
	if master == "" && kubeconfig == "" {
		cfg, err := rest.InClusterConfig()
		if err == nil {
			return cfg, nil
		}

		if !errors.Is(err, rest.ErrNotInCluster) {
			return nil, fmt.Errorf("load in-cluster config: %w", err)
		}

		kubeconfig = defaultKubeconfig()
		if kubeconfig == "" {
			return nil, ErrNoCredentials
		}
	}

	if kubeconfig != "" {
		if _, err := os.Stat(kubeconfig); err != nil {
			return nil, fmt.Errorf("%w: kubeconfig %s: %w", ErrNoCredentials, kubeconfig, err)
		}
	}

	cfg, err := clientcmd.BuildConfigFromFlags(master, kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	return cfg, nil
}

func defaultKubeconfig() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	path := filepath.Join(home, clientcmd.RecommendedHomeDir, clientcmd.RecommendedFileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	return path
}
