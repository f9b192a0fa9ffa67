package reducer

import "github.com/sandeepkv93/studyquest/internal/model"

func artifactID(a model.Artifact) string { return a.ID }

// AddArtifact puts a dug artifact at the front of the collection. Invalid
// artifacts and ids already present are ignored.
func AddArtifact(s model.AppState, a model.Artifact) model.AppState {
	if a.Validate() != nil || indexOf(s.Artifacts, artifactID, a.ID) >= 0 {
		return s
	}
	s.Artifacts = prepend(s.Artifacts, a)
	return s
}
