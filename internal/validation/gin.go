package validation

import "github.com/gin-gonic/gin/binding"

// GinValidator adapts Struct to gin's binding.StructValidator.
type GinValidator struct{}

var _ binding.StructValidator = GinValidator{}

func (GinValidator) ValidateStruct(obj any) error {
	return Struct(obj)
}

func (GinValidator) Engine() any {
	return Validator()
}

// InstallGin makes gin validate bound requests with Struct.
func InstallGin() {
	binding.Validator = GinValidator{}
}
