package k8s

import (
	"context"
	"fmt"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/informers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/cache"

	"github.com/skillcoder/helmdeploy-controller/internal/logic/podmonitor"
)

const eventBufferSize = 64

// Adapter serves pod events and pod logs from the cluster API.
type Adapter struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
}

// New creates a new K8s adapter.
func New(logger *slog.Logger, clientset kubernetes.Interface) *Adapter {
	return &Adapter{
		logger:    logger,
		clientset: clientset,
	}
}

var _ podmonitor.Cluster = (*Adapter)(nil)

// WatchPodsQuery streams add, update and delete events of the pods in the
// namespace. Existing pods are reported as added first. The channel is closed
// after ctx is done and the informer has stopped.
func (a *Adapter) WatchPodsQuery(
	ctx context.Context,
	namespace string,
) (<-chan podmonitor.PodEvent, error) {
	factory := informers.NewSharedInformerFactoryWithOptions(
		a.clientset,
		0,
		informers.WithNamespace(namespace),
	)
	informer := factory.Core().V1().Pods().Informer()

	out := make(chan podmonitor.PodEvent, eventBufferSize)

	send := func(obj any) {
		event, ok := toPodEvent(obj)
		if !ok {
			a.logger.WarnContext(ctx, "unexpected object in pod informer", "type", fmt.Sprintf("%T", obj))

			return
		}

		select {
		case out <- event:
		case <-ctx.Done():
		}
	}

	_, err := informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc:    send,
		UpdateFunc: func(_, newObj any) { send(newObj) },
		DeleteFunc: send,
	})
	if err != nil {
		return nil, fmt.Errorf("add pod event handler: %w", err)
	}

	factory.Start(ctx.Done())

	go func() {
		<-ctx.Done()

		// Shutdown waits for the handlers, so nothing sends after close.
		factory.Shutdown()
		close(out)
	}()

	return out, nil
}

// GetPodLogQuery returns the last tailLines lines of the pod's log.
func (a *Adapter) GetPodLogQuery(
	ctx context.Context,
	namespace,
	name string,
	tailLines int64,
) (string, error) {
	opts := &corev1.PodLogOptions{}
	if tailLines > 0 {
		opts.TailLines = &tailLines
	}

	data, err := a.clientset.CoreV1().Pods(namespace).GetLogs(name, opts).DoRaw(ctx)
	if err != nil {
		if apierrors.IsNotFound(err) {
			return "", fmt.Errorf("get pod log: %w", &PodNotFoundError{Name: name})
		}

		return "", fmt.Errorf("get pod log: %w", err)
	}

	return string(data), nil
}
