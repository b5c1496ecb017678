package core

// Strategy picks the cluster to remove on the current turn.
type Strategy interface {
	// BestCluster returns the chosen cluster, or nil when clusters is empty.
	BestCluster(clusters []*Cluster) *Cluster
}

// Greedy selects the largest cluster. Ties go to the cluster whose priority
// ball has priority (smaller column, then smaller row).
type Greedy struct{}

// BestCluster implements Strategy.
func (Greedy) BestCluster(clusters []*Cluster) *Cluster {
	var best *Cluster
	for _, c := range clusters {
		switch {
		case best == nil:
			best = c
		case c.Len() > best.Len():
			best = c
		case c.Len() == best.Len() && c.PriorityBall().Precedes(best.PriorityBall()):
			best = c
		}
	}
	return best
}
