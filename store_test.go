package btvo

import (
	"testing"
	"time"
)

func TestStateStoreBasics(t *testing.T) {
	s := NewStateStore[Job]()

	if _, ok := s.Get("a"); ok {
		t.Fatal("expected empty store")
	}

	s.Put("a", Job{ID: "a", Status: JobPending})
	if s.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", s.Len())
	}

	job, ok := s.Get("a")
	if !ok || job.ID != "a" {
		t.Fatalf("unexpected get: %+v", job)
	}

	if !s.Update("a", func(j *Job) { j.Status = JobComplete }) {
		t.Fatal("expected update to succeed")
	}
	job, _ = s.Get("a")
	if job.Status != JobComplete {
		t.Fatalf("expected complete, got %s", job.Status)
	}

	if s.Update("missing", func(j *Job) {}) {
		t.Fatal("expected update of missing item to fail")
	}

	if !s.Delete("a") {
		t.Fatal("expected delete to succeed")
	}
	if s.Delete("a") {
		t.Fatal("expected second delete to fail")
	}
}

func TestStateStoreFilter(t *testing.T) {
	s := NewStateStore[Job]()
	s.Put("a", Job{ID: "a", Status: JobRunning})
	s.Put("b", Job{ID: "b", Status: JobComplete})
	s.Put("c", Job{ID: "c", Status: JobRunning})

	running := s.Filter(func(j Job) bool { return j.Status == JobRunning })
	if len(running) != 2 {
		t.Fatalf("expected 2 running, got %d", len(running))
	}
}

func TestStateStorePruneIfAndKeys(t *testing.T) {
	s := NewStateStore[Job]()
	s.Put("a", Job{ID: "a", Status: JobComplete})
	s.Put("b", Job{ID: "b", Status: JobRunning})
	s.Put("c", Job{ID: "c", Status: JobComplete})

	keys := s.Keys()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %v", keys)
	}

	pruned := s.PruneIf(func(key string, j Job) bool { return j.Status == JobComplete })
	if len(pruned) != 2 {
		t.Fatalf("expected 2 pruned, got %d", len(pruned))
	}

	keys = s.Keys()
	if len(keys) != 1 || keys[0] != "b" {
		t.Fatalf("expected only b to remain, got %v", keys)
	}
}

func TestStorePruneFinishedJobs(t *testing.T) {
	st := NewStore()
	st.Jobs.Put("done", Job{ID: "done", Status: JobComplete})
	st.Jobs.Put("busy", Job{ID: "busy", Status: JobRunning})
	st.Jobs.Put("new", Job{ID: "new", Status: JobPending})

	pruned := st.PruneFinishedJobs()
	if len(pruned) != 1 || pruned[0].ID != "done" {
		t.Fatalf("unexpected pruned set: %+v", pruned)
	}
	if st.Jobs.Len() != 2 {
		t.Fatalf("expected 2 jobs left, got %d", st.Jobs.Len())
	}
}

func TestStoreListJobsOrder(t *testing.T) {
	st := NewStore()
	now := time.Now()
	st.Jobs.Put("oldest", Job{ID: "oldest", CreatedAt: now.Add(-2 * time.Hour)})
	st.Jobs.Put("newest", Job{ID: "newest", CreatedAt: now})
	st.Jobs.Put("middle", Job{ID: "middle", CreatedAt: now.Add(-time.Hour)})

	jobs := st.ListJobs()
	if len(jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(jobs))
	}
	if jobs[0].ID != "newest" || jobs[1].ID != "middle" || jobs[2].ID != "oldest" {
		t.Fatalf("unexpected order: %v", []string{jobs[0].ID, jobs[1].ID, jobs[2].ID})
	}
}
