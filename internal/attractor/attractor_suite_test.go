package attractor_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAttractor(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attractor Suite")
}
