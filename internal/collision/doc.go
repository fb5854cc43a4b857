// Package collision detects and resolves contacts between circular bodies
// and the walls of a bounding box.
//
// Detection is narrow-phase only: every unordered pair is tested directly,
// which is adequate for the tens of bodies a scenario holds.
//
// Resolution is impulse based and parameterized by a restitution
// coefficient e in [0,1]:
//
//	j = -(1+e)·(v_rel·n) / (1/m_a + 1/m_b)
//
// followed by a positional correction that moves each body half the
// penetration depth apart. Fixed bodies act as infinite mass.
package collision
