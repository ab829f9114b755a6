package service

import (
	"hangul_edu_backend/internal/model"
	"testing"
)

func courseModule(id uint, position int) model.CourseModule {
	return model.CourseModule{BaseModel: model.BaseModel{ID: id}, Position: position}
}

func TestFinalModule(t *testing.T) {
	tests := []struct {
		name    string
		modules []model.CourseModule
		current model.CourseModule
		want    bool
	}{
		{
			"only module is final",
			[]model.CourseModule{courseModule(1, 0)},
			courseModule(1, 0),
			true,
		},
		{
			"middle module is not final",
			[]model.CourseModule{courseModule(1, 0), courseModule(2, 1), courseModule(3, 2)},
			courseModule(2, 1),
			false,
		},
		{
			"highest position is final",
			[]model.CourseModule{courseModule(1, 0), courseModule(2, 1), courseModule(3, 2)},
			courseModule(3, 2),
			true,
		},
		{
			"tied position, higher id is final",
			[]model.CourseModule{courseModule(1, 5), courseModule(2, 5)},
			courseModule(2, 5),
			true,
		},
		{
			"tied position, lower id is not final",
			[]model.CourseModule{courseModule(1, 5), courseModule(2, 5)},
			courseModule(1, 5),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := tt.current
			if got := finalModule(tt.modules, &current); got != tt.want {
				t.Errorf("finalModule() = %v, want %v", got, tt.want)
			}
		})
	}
}
