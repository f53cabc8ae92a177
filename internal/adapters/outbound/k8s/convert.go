package k8s

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/tools/cache"

	"github.com/skillcoder/helmdeploy-controller/internal/logic/podmonitor"
)

// toPodEvent converts an informer object, unwrapping delete tombstones.
func toPodEvent(obj any) (podmonitor.PodEvent, bool) {
	if tombstone, ok := obj.(cache.DeletedFinalStateUnknown); ok {
		obj = tombstone.Obj
	}

	pod, ok := obj.(*corev1.Pod)
	if !ok {
		return podmonitor.PodEvent{}, false
	}

	return podmonitor.PodEvent{
		Name:  pod.Name,
		Phase: string(pod.Status.Phase),
	}, true
}
