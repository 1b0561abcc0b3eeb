package service

import (
	"errors"
	"testing"

	"github.com/sabaqhub/sabaq/internal/dto"
)

func TestValidateTaskContent(t *testing.T) {
	cases := []struct {
		name    string
		req     dto.TaskCreateDTO
		wantErr bool
	}{
		{
			name:    "video without videos",
			req:     dto.TaskCreateDTO{TaskType: "video"},
			wantErr: true,
		},
		{
			name: "video with one video",
			req: dto.TaskCreateDTO{
				TaskType: "video",
				Videos:   []dto.VideoCreateDTO{{URL: "https://example.com/v.mp4"}},
			},
		},
		{
			name: "simple question with two correct options",
			req: dto.TaskCreateDTO{
				TaskType: "test",
				Questions: []dto.QuestionCreateDTO{{
					Text:         "pick one",
					QuestionType: "simple",
					Options: []dto.OptionCreateDTO{
						{Text: "a", IsCorrect: true},
						{Text: "b", IsCorrect: true},
					},
				}},
			},
			wantErr: true,
		},
		{
			name: "multiple question without correct options",
			req: dto.TaskCreateDTO{
				TaskType: "test",
				Questions: []dto.QuestionCreateDTO{{
					Text:         "pick many",
					QuestionType: "multiple",
					Options:      []dto.OptionCreateDTO{{Text: "a"}, {Text: "b"}},
				}},
			},
			wantErr: true,
		},
		{
			name: "valid test",
			req: dto.TaskCreateDTO{
				TaskType: "test",
				Questions: []dto.QuestionCreateDTO{{
					Text:         "pick one",
					QuestionType: "simple",
					Options: []dto.OptionCreateDTO{
						{Text: "a", IsCorrect: true},
						{Text: "b"},
					},
				}},
			},
		},
		{
			name: "matching with a single column",
			req: dto.TaskCreateDTO{
				TaskType: "matching",
				Columns:  []dto.MatchingColumnCreateDTO{{Label: "only", Items: []string{"x"}}},
			},
			wantErr: true,
		},
		{
			name: "matching without items",
			req: dto.TaskCreateDTO{
				TaskType: "matching",
				Columns: []dto.MatchingColumnCreateDTO{
					{Label: "left"}, {Label: "right"},
				},
			},
			wantErr: true,
		},
		{
			name: "table cell outside the grid",
			req: dto.TaskCreateDTO{
				TaskType:     "table",
				TableRows:    []string{"r1"},
				TableColumns: []string{"c1"},
				TableCells:   []dto.TableCellCreateDTO{{RowIndex: 1, ColumnIndex: 0, Correct: true}},
			},
			wantErr: true,
		},
		{
			name: "valid table",
			req: dto.TaskCreateDTO{
				TaskType:     "table",
				TableRows:    []string{"r1", "r2"},
				TableColumns: []string{"c1"},
				TableCells:   []dto.TableCellCreateDTO{{RowIndex: 1, ColumnIndex: 0, Correct: true}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTaskContent(&tc.req)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTaskContent) {
					t.Fatalf("expected ErrInvalidTaskContent, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
