//go:build unix

package jobpool

// UsageExamples documents common invocations for --help-usage.
const UsageExamples = `Example usage:

# Start <command> after setting the pool to provide as many jobs
# as available CPUs (the default)
poolctl <command>

# Start <command> with a fixed number of job slots.
poolctl -j10 <command>

# Disable the feature with a non-positive count. This is equivalent
# to running <command> directly.
poolctl -j0 <command>

# Use a specific FIFO path
poolctl --fifo=/tmp/my_build_jobs <command>

# Setup the pool then start a new interactive Bash shell
# session, print MAKEFLAGS value, build stuff, then exit.
poolctl bash -i
echo "$MAKEFLAGS"
... build stuff ...
exit
`
